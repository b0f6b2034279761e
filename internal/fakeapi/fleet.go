package fakeapi

import (
	"net/http"
	"slices"

	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
)

func (s *Server) listVehicles(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.vehicles)
}

func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	var spec v1.VehicleSpec
	if !decode(w, r, &spec) {
		return
	}
	writeJSON(w, http.StatusOK, s.AddVehicle(spec))
}

func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	var v v1.Vehicle
	if !decode(w, r, &v) {
		return
	}
	v.ID = pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.vehicles, v.ID)
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	s.vehicles[i] = v
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = remove(w, r, s.vehicles)
}

func (s *Server) listChargers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.chargers)
}

func (s *Server) createCharger(w http.ResponseWriter, r *http.Request) {
	var spec v1.ChargerSpec
	if !decode(w, r, &spec) {
		return
	}
	writeJSON(w, http.StatusOK, s.AddCharger(spec))
}

func (s *Server) updateCharger(w http.ResponseWriter, r *http.Request) {
	var c v1.Charger
	if !decode(w, r, &c) {
		return
	}
	c.ID = pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.chargers, c.ID)
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	s.chargers[i] = c
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCharger(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chargers = remove(w, r, s.chargers)
}

func (s *Server) listDrivers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.drivers)
}

func (s *Server) createDriver(w http.ResponseWriter, r *http.Request) {
	var spec v1.DriverSpec
	if !decode(w, r, &spec) {
		return
	}
	writeJSON(w, http.StatusOK, s.AddDriver(spec))
}

func (s *Server) updateDriver(w http.ResponseWriter, r *http.Request) {
	var d v1.Driver
	if !decode(w, r, &d) {
		return
	}
	d.ID = pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.drivers, d.ID)
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	s.drivers[i] = d
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDriver(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers = remove(w, r, s.drivers)
}

// remove answers 204 when the entity existed and 404 otherwise. Callers hold s.mu.
func remove[T interface{ Identity() int64 }](w http.ResponseWriter, r *http.Request, items []T) []T {
	i := indexOf(items, pathID(r))
	if i < 0 {
		http.NotFound(w, r)
		return items
	}
	w.WriteHeader(http.StatusNoContent)
	return slices.Delete(items, i, i+1)
}

// AddVehicle stores a vehicle and returns it with its new id.
func (s *Server) AddVehicle(spec v1.VehicleSpec) v1.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := v1.Vehicle{ID: s.allocID(), VehicleSpec: spec}
	s.vehicles = append(s.vehicles, v)
	return v
}

func (s *Server) AddCharger(spec v1.ChargerSpec) v1.Charger {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := v1.Charger{ID: s.allocID(), ChargerSpec: spec}
	s.chargers = append(s.chargers, c)
	return c
}

func (s *Server) AddDriver(spec v1.DriverSpec) v1.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := v1.Driver{ID: s.allocID(), DriverSpec: spec}
	s.drivers = append(s.drivers, d)
	return d
}
