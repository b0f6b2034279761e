package fakeapi

import (
	"time"

	"k8s.io/utils/ptr"

	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
)

// Seed fills the server with a small demo fleet. Trips are placed relative to
// the server clock so the dashboard always has something to show.
func (s *Server) Seed() error {
	now := s.now().UTC()
	seen := ptr.To(s.formatTime(now.Add(-10 * time.Minute)))

	nexon := s.AddVehicle(v1.VehicleSpec{
		Registration: "KA01AB1234", Model: "Tata Nexon EV", BatteryCapacityKWh: 40.5,
		CurrentBatteryPercent: 82, Status: v1.VehicleStatusIdle, LastSeenAt: seen,
		LastKnownLatitude: ptr.To(12.9716), LastKnownLongitude: ptr.To(77.5946),
	})
	kona := s.AddVehicle(v1.VehicleSpec{
		Registration: "KA02CD5678", Model: "Hyundai Kona", BatteryCapacityKWh: 39.2,
		CurrentBatteryPercent: 18, Status: v1.VehicleStatusDriving, LastSeenAt: seen,
	})
	s.AddVehicle(v1.VehicleSpec{
		Registration: "KA03EF9012", Model: "MG ZS EV", BatteryCapacityKWh: 50.3,
		CurrentBatteryPercent: 45, Status: v1.VehicleStatusCharging,
	})

	s.AddCharger(v1.ChargerSpec{LocationName: "Whitefield Depot", MaxPowerKW: 60, Status: v1.ChargerStatusAvailable})
	s.AddCharger(v1.ChargerSpec{LocationName: "Koramangala Hub", MaxPowerKW: 22, Status: v1.ChargerStatusInUse})
	s.AddCharger(v1.ChargerSpec{LocationName: "Airport Road", MaxPowerKW: 150, Status: v1.ChargerStatusFaulty})

	asha := s.AddDriver(v1.DriverSpec{Name: "Asha Rao", Phone: "+91 90000 00001", LicenseID: "KA-DL-0001", Active: true})
	ravi := s.AddDriver(v1.DriverSpec{Name: "Ravi Kumar", Phone: "+91 90000 00002", LicenseID: "KA-DL-0002", Active: true})
	s.AddDriver(v1.DriverSpec{Name: "Meera Iyer", Phone: "+91 90000 00003", LicenseID: "KA-DL-0003", Active: false})

	trips := []TripSpec{
		{VehicleID: kona.ID, DriverID: ravi.ID, Start: now.Add(-30 * time.Minute), Status: v1.TripStatusInProgress,
			Origin: "Whitefield", Destination: "Airport"},
		{VehicleID: kona.ID, DriverID: asha.ID, Start: now.Add(2 * time.Hour), Status: v1.TripStatusPlanned,
			Origin: "Airport", Destination: "MG Road"},
		{VehicleID: nexon.ID, DriverID: asha.ID, Start: now.Add(-3 * time.Hour), End: ptr.To(now.Add(-2 * time.Hour)),
			Status: v1.TripStatusCompleted, Origin: "Indiranagar"},
	}
	for _, t := range trips {
		if _, err := s.AddTrip(t); err != nil {
			return err
		}
	}
	return nil
}
