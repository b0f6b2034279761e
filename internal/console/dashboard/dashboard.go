// Package dashboard implements the view-model of the fleet overview page.
package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/fleetconsole/internal/console/render"
	"github.com/autopeer-io/fleetconsole/internal/console/resource"
	"github.com/autopeer-io/fleetconsole/internal/pkg/metrics"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/log"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// AtRiskLookaheadHours is the trip window the at-risk aggregate is requested for.
const AtRiskLookaheadHours = 4

const (
	Name = "dashboard"

	EVStatusPath      = "/dashboard/ev-status"
	ChargerStatusPath = "/dashboard/charger-status"
	TodayTripsPath    = "/dashboard/today-trips"

	// LoadFailedMessage is recorded when any of the aggregates cannot be fetched.
	LoadFailedMessage = "Failed to load dashboard data"
)

var AtRiskPath = fmt.Sprintf("/dashboard/at-risk?hours=%d", AtRiskLookaheadHours)

// State is a point-in-time copy of the dashboard.
type State struct {
	EVStatus      []v1.StatusCount
	ChargerStatus []v1.StatusCount
	AtRisk        []v1.AtRiskVehicle
	TodayTrips    []v1.Trip
	Loading       bool
	Error         string
}

// Dashboard holds four read-only aggregates that are always refreshed together.
type Dashboard struct {
	client rest.Client
	logger log.Logger

	mu    sync.Mutex
	state State
	seq   uint64
}

func New(client rest.Client) *Dashboard {
	return &Dashboard{
		client: client,
		logger: log.WithName("page").WithValues("page", Name),
		state: State{
			EVStatus:      []v1.StatusCount{},
			ChargerStatus: []v1.StatusCount{},
			AtRisk:        []v1.AtRiskVehicle{},
			TodayTrips:    []v1.Trip{},
		},
	}
}

func (d *Dashboard) Title() string { return "Dashboard" }

// State returns a copy of the current state.
func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.state
	st.EVStatus = slices.Clone(st.EVStatus)
	st.ChargerStatus = slices.Clone(st.ChargerStatus)
	st.AtRisk = slices.Clone(st.AtRisk)
	st.TodayTrips = slices.Clone(st.TodayTrips)
	return st
}

func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.LoadAll(ctx)
}

// LoadAll fetches the four aggregates concurrently. Either all of them are
// applied or none: the first failure cancels the remaining requests and the
// previous aggregates stay visible.
func (d *Dashboard) LoadAll(ctx context.Context) error {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.state.Loading = true
	d.state.Error = ""
	d.mu.Unlock()

	var (
		evStatus      []v1.StatusCount
		chargerStatus []v1.StatusCount
		atRisk        []v1.AtRiskVehicle
		todayTrips    []v1.Trip
	)

	g, gctx := errgroup.WithContext(log.IntoContext(ctx, d.logger))
	g.Go(func() error { return d.client.Get(gctx, EVStatusPath, &evStatus) })
	g.Go(func() error { return d.client.Get(gctx, ChargerStatusPath, &chargerStatus) })
	g.Go(func() error { return d.client.Get(gctx, AtRiskPath, &atRisk) })
	g.Go(func() error { return d.client.Get(gctx, TodayTripsPath, &todayTrips) })
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()

	latest := seq == d.seq
	if latest {
		d.state.Loading = false
	}
	if !latest || ctx.Err() != nil {
		d.logger.Debug("Discarding response", "operation", resource.OpLoad)
		metrics.StaleResponsesTotal.WithLabelValues(Name).Inc()
		return fmt.Errorf("%s %s: %w", Name, resource.OpLoad, resource.ErrStale)
	}

	if err != nil {
		kind := rest.KindOf(err)
		d.state.Error = LoadFailedMessage
		d.logger.Error(err, LoadFailedMessage, "kind", kind, "status", rest.StatusCode(err))
		metrics.OperationFailuresTotal.WithLabelValues(Name, resource.OpLoad, kind.String()).Inc()
		return err
	}

	d.state.EVStatus = orEmpty(evStatus)
	d.state.ChargerStatus = orEmpty(chargerStatus)
	d.state.AtRisk = orEmpty(atRisk)
	d.state.TodayTrips = orEmpty(todayTrips)
	return nil
}

// View renders the four aggregates as one text block.
func (d *Dashboard) View() string {
	st := d.State()
	return render.StatusCounts("EV status", st.EVStatus) + "\n\n" +
		render.StatusCounts("Charger status", st.ChargerStatus) + "\n\n" +
		fmt.Sprintf("At-risk EVs (next %dh)\n", AtRiskLookaheadHours) + render.AtRisk(st.AtRisk) + "\n\n" +
		"Today's trips\n" + render.Trips(st.TodayTrips)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
