// Package export writes point-in-time dashboard snapshots to object storage.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/autopeer-io/fleetconsole/internal/console/dashboard"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/log"
)

// KeyPrefix is prepended to every snapshot object key.
const KeyPrefix = "dashboard"

// Snapshot is the document stored for one export.
type Snapshot struct {
	TakenAt           time.Time          `json:"takenAt"`
	AtRiskWindowHours int                `json:"atRiskWindowHours"`
	EVStatus          []v1.StatusCount   `json:"evStatus"`
	ChargerStatus     []v1.StatusCount   `json:"chargerStatus"`
	AtRisk            []v1.AtRiskVehicle `json:"atRisk"`
	TodayTrips        []v1.Trip          `json:"todayTrips"`
}

// NewSnapshot copies the aggregates out of a dashboard state.
func NewSnapshot(st dashboard.State, takenAt time.Time) Snapshot {
	return Snapshot{
		TakenAt:           takenAt.UTC(),
		AtRiskWindowHours: dashboard.AtRiskLookaheadHours,
		EVStatus:          st.EVStatus,
		ChargerStatus:     st.ChargerStatus,
		AtRisk:            st.AtRisk,
		TodayTrips:        st.TodayTrips,
	}
}

// Key returns the object key of the snapshot, partitioned by day.
func (s Snapshot) Key() string {
	return path.Join(KeyPrefix, s.TakenAt.Format("2006/01/02"), s.TakenAt.Format("150405Z")+".json")
}

// Result tells where an exported snapshot can be fetched.
type Result struct {
	Key string
	URL string
}

// Exporter uploads snapshots and hands out presigned links to them.
type Exporter struct {
	provider Provider
	expiry   time.Duration
}

func NewExporter(p Provider, expiry time.Duration) *Exporter {
	return &Exporter{provider: p, expiry: expiry}
}

// Export stores snap and returns a download link valid for the configured expiry.
func (e *Exporter) Export(ctx context.Context, snap Snapshot) (Result, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode snapshot: %w", err)
	}

	if err := e.provider.CheckBucket(ctx); err != nil {
		return Result{}, err
	}

	key := snap.Key()
	if err := e.provider.Put(ctx, key, data, "application/json"); err != nil {
		return Result{}, err
	}

	url, err := e.provider.GeneratePresignedURL(ctx, key, e.expiry)
	if err != nil {
		return Result{}, err
	}

	log.Info("Exported dashboard snapshot", "key", key, "bytes", len(data))
	return Result{Key: key, URL: url}, nil
}

func objectFileName(key string) string {
	return path.Base(key)
}
