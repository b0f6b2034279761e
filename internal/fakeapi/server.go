// Package fakeapi is an in-memory implementation of the fleet REST API. It backs
// the fleetops-mockapi binary and the console's tests.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/log"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// PathPrefix is where the API is mounted, matching the production base URL.
const PathPrefix = "/api"

// LowBatteryPercent is the threshold below which a vehicle with an upcoming or
// running trip is reported at risk.
const LowBatteryPercent = 30

// DefaultAtRiskHours is used when the at-risk query carries no hours parameter.
const DefaultAtRiskHours = 4

// TimeLayout is how the API formats timestamps.
const TimeLayout = "2006-01-02T15:04:05"

type fault struct {
	method string
	path   string
	status int
}

// Server holds the fleet in memory. It is safe for concurrent use.
type Server struct {
	router *mux.Router
	now    func() time.Time

	mu       sync.Mutex
	nextID   int64
	vehicles []v1.Vehicle
	chargers []v1.Charger
	drivers  []v1.Driver
	trips    []v1.Trip
	faults   []fault
	requests []string
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces the wall clock used by the dashboard aggregates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(opts ...Option) *Server {
	s := &Server{
		now:      time.Now,
		nextID:   1,
		vehicles: []v1.Vehicle{},
		chargers: []v1.Charger{},
		drivers:  []v1.Driver{},
		trips:    []v1.Trip{},
	}
	for _, o := range opts {
		o(s)
	}

	r := mux.NewRouter()
	r.Use(s.record, s.inject)
	api := r.PathPrefix(PathPrefix).Subrouter()

	api.HandleFunc("/evs", s.listVehicles).Methods(http.MethodGet)
	api.HandleFunc("/evs", s.createVehicle).Methods(http.MethodPost)
	api.HandleFunc("/evs/{id:[0-9]+}", s.updateVehicle).Methods(http.MethodPut)
	api.HandleFunc("/evs/{id:[0-9]+}", s.deleteVehicle).Methods(http.MethodDelete)

	api.HandleFunc("/chargers", s.listChargers).Methods(http.MethodGet)
	api.HandleFunc("/chargers", s.createCharger).Methods(http.MethodPost)
	api.HandleFunc("/chargers/{id:[0-9]+}", s.updateCharger).Methods(http.MethodPut)
	api.HandleFunc("/chargers/{id:[0-9]+}", s.deleteCharger).Methods(http.MethodDelete)

	api.HandleFunc("/drivers", s.listDrivers).Methods(http.MethodGet)
	api.HandleFunc("/drivers", s.createDriver).Methods(http.MethodPost)
	api.HandleFunc("/drivers/{id:[0-9]+}", s.updateDriver).Methods(http.MethodPut)
	api.HandleFunc("/drivers/{id:[0-9]+}", s.deleteDriver).Methods(http.MethodDelete)

	api.HandleFunc("/dashboard/ev-status", s.evStatus).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/charger-status", s.chargerStatus).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/at-risk", s.atRisk).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/today-trips", s.todayTrips).Methods(http.MethodGet)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FailNext makes the next request matching method and path (relative to
// PathPrefix, without query) answer with status and an empty body.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, path: path, status: status})
}

// Requests returns "METHOD path" for every request received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+strings.TrimPrefix(r.URL.Path, PathPrefix))
		s.mu.Unlock()

		log.Debug("Serving request", "method", r.Method, "path", r.URL.Path,
			"requestID", r.Header.Get(rest.RequestIDHeader))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, PathPrefix)

		s.mu.Lock()
		i := slices.IndexFunc(s.faults, func(f fault) bool { return f.method == r.Method && f.path == path })
		var status int
		if i >= 0 {
			status = s.faults[i].status
			s.faults = slices.Delete(s.faults, i, i+1)
		}
		s.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(err, "Failed to encode response")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(r *http.Request) int64 {
	// The route pattern only admits digits.
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// allocID hands out ids shared by every collection. Callers hold s.mu.
func (s *Server) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func indexOf[T interface{ Identity() int64 }](items []T, id int64) int {
	return slices.IndexFunc(items, func(it T) bool { return it.Identity() == id })
}

func (s *Server) formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
