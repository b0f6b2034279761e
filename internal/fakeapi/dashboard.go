package fakeapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"k8s.io/utils/ptr"

	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
)

// ErrNotFound is returned by AddTrip when the vehicle or driver does not exist.
var ErrNotFound = errors.New("not found")

// TripSpec describes a trip to seed.
type TripSpec struct {
	VehicleID   int64
	DriverID    int64
	Start       time.Time
	End         *time.Time
	Status      v1.TripStatus
	Origin      string
	Destination string
}

// AddTrip stores a trip, embedding snapshots of its vehicle and driver.
func (s *Server) AddTrip(spec TripSpec) (v1.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vi, di := indexOf(s.vehicles, spec.VehicleID), indexOf(s.drivers, spec.DriverID)
	if vi < 0 || di < 0 {
		return v1.Trip{}, fmt.Errorf("trip for vehicle %d and driver %d: %w", spec.VehicleID, spec.DriverID, ErrNotFound)
	}

	t := v1.Trip{
		ID:        s.allocID(),
		EV:        s.vehicles[vi],
		Driver:    s.drivers[di],
		StartTime: s.formatTime(spec.Start),
		Status:    spec.Status,
	}
	if spec.End != nil {
		t.EndTime = ptr.To(s.formatTime(*spec.End))
	}
	if spec.Origin != "" {
		t.Origin = ptr.To(spec.Origin)
	}
	if spec.Destination != "" {
		t.Destination = ptr.To(spec.Destination)
	}
	s.trips = append(s.trips, t)
	return t, nil
}

func (s *Server) evStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int64{}
	for _, v := range s.vehicles {
		counts[string(v.Status)]++
	}
	writeJSON(w, http.StatusOK, statusCounts(v1.VehicleStatuses, counts))
}

func (s *Server) chargerStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int64{}
	for _, c := range s.chargers {
		counts[string(c.Status)]++
	}
	writeJSON(w, http.StatusOK, statusCounts(v1.ChargerStatuses, counts))
}

// statusCounts lists the statuses that occur, in enum order.
func statusCounts[E ~string](order []E, counts map[string]int64) []v1.StatusCount {
	out := []v1.StatusCount{}
	for _, st := range order {
		if n := counts[string(st)]; n > 0 {
			out = append(out, v1.StatusCount{Status: string(st), Count: n})
		}
	}
	return out
}

func (s *Server) atRisk(w http.ResponseWriter, r *http.Request) {
	hours := DefaultAtRiskHours
	if q := r.URL.Query().Get("hours"); q != "" {
		h, err := strconv.Atoi(q)
		if err != nil || h < 0 {
			http.Error(w, "hours must be a non-negative integer", http.StatusBadRequest)
			return
		}
		hours = h
	}

	now := s.now().UTC()
	until := now.Add(time.Duration(hours) * time.Hour)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []v1.AtRiskVehicle{}
	for _, t := range s.trips {
		if t.Status != v1.TripStatusPlanned && t.Status != v1.TripStatusInProgress {
			continue
		}
		start, err := time.Parse(TimeLayout, t.StartTime)
		if err != nil || start.After(until) {
			continue
		}
		// The trip carries a snapshot; battery state comes from the live vehicle.
		vi := indexOf(s.vehicles, t.EV.ID)
		if vi < 0 {
			continue
		}
		v := s.vehicles[vi]
		if v.CurrentBatteryPercent >= LowBatteryPercent {
			continue
		}
		out = append(out, v1.AtRiskVehicle{
			EVID:                  v.ID,
			Registration:          v.Registration,
			CurrentBatteryPercent: v.CurrentBatteryPercent,
			LastSeenAt:            v.LastSeenAt,
			TripID:                t.ID,
			TripStartTime:         t.StartTime,
			TripOrigin:            t.Origin,
			TripDestination:       t.Destination,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) todayTrips(w http.ResponseWriter, _ *http.Request) {
	now := s.now().UTC()
	day := now.Format(time.DateOnly)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []v1.Trip{}
	for _, t := range s.trips {
		start, err := time.Parse(TimeLayout, t.StartTime)
		if err == nil && start.Format(time.DateOnly) == day {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}
