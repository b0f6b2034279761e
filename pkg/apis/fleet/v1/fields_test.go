package v1

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestVehicleSpecSetField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		check   func(s VehicleSpec) bool
		wantErr error
	}{
		{"text", "registration", "KA01AB1234", func(s VehicleSpec) bool { return s.Registration == "KA01AB1234" }, nil},
		{"number", "batteryCapacityKWh", "60.5", func(s VehicleSpec) bool { return s.BatteryCapacityKWh == 60.5 }, nil},
		{"blank number is zero", "currentBatteryPercent", "", func(s VehicleSpec) bool { return s.CurrentBatteryPercent == 0 }, nil},
		{"enum is normalized", "status", "maintenance", func(s VehicleSpec) bool { return s.Status == VehicleStatusMaintenance }, nil},
		{"optional number", "lastKnownLatitude", "12.97", func(s VehicleSpec) bool {
			return s.LastKnownLatitude != nil && *s.LastKnownLatitude == 12.97
		}, nil},
		{"unknown enum keeps value", "status", "parked", func(s VehicleSpec) bool { return s.Status == VehicleStatusIdle }, ErrInvalidValue},
		{"bad number keeps value", "currentBatteryPercent", "abc", func(s VehicleSpec) bool { return s.CurrentBatteryPercent == 100 }, ErrInvalidValue},
		{"unknown field", "colour", "red", func(s VehicleSpec) bool { return s == NewVehicleSpec() }, ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewVehicleSpec()
			err := s.SetField(tt.field, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetField(%q, %q) error = %v, want %v", tt.field, tt.value, err, tt.wantErr)
			}
			if !tt.check(s) {
				t.Errorf("SetField(%q, %q) produced %+v", tt.field, tt.value, s)
			}
		})
	}
}

func TestChargerSpecSetField(t *testing.T) {
	s := NewChargerSpec()
	if s.Status != ChargerStatusAvailable {
		t.Fatalf("default status = %s, want AVAILABLE", s.Status)
	}
	if err := s.SetField("status", "in-use"); err != nil {
		t.Fatal(err)
	}
	if s.Status != ChargerStatusInUse {
		t.Errorf("status = %s, want IN_USE", s.Status)
	}
	if err := s.SetField("status", "bogus"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
	if s.Status != ChargerStatusInUse {
		t.Errorf("status = %s after a rejected value, want IN_USE", s.Status)
	}
	if err := s.SetField("maxPowerKW", "22"); err != nil || s.MaxPowerKW != 22 {
		t.Errorf("maxPowerKW = %v, err = %v", s.MaxPowerKW, err)
	}
}

func TestDriverSpecSetField(t *testing.T) {
	s := NewDriverSpec()
	if !s.Active {
		t.Fatal("new drivers must start active")
	}
	if err := s.SetField("active", "false"); err != nil || s.Active {
		t.Errorf("active = %v, err = %v", s.Active, err)
	}
	if err := s.SetField("active", "maybe"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
	if err := s.SetField("licenseId", "DL-1"); err != nil || s.LicenseID != "DL-1" {
		t.Errorf("licenseId = %q, err = %v", s.LicenseID, err)
	}
}

func TestDecodeVehicleList(t *testing.T) {
	body := `[{"id":1,"registration":"KA01AB1234","model":"Nexon EV","batteryCapacityKWh":40.5,
		"currentBatteryPercent":82,"status":"IDLE","lastKnownLatitude":null,"lastKnownLongitude":null,
		"lastSeenAt":null}]`

	var got []Vehicle
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	v := got[0]
	if v.Identity() != 1 || v.Registration != "KA01AB1234" || v.Status != VehicleStatusIdle {
		t.Errorf("decoded %+v", v)
	}
	if v.LastKnownLatitude != nil || v.LastSeenAt != nil {
		t.Errorf("optional fields should stay nil: %+v", v)
	}
}

func TestEncodeDriverIsFlat(t *testing.T) {
	d := Driver{ID: 3, DriverSpec: DriverSpec{Name: "Asha", Phone: "9000000000", LicenseID: "DL-9", Active: false}}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":3,"name":"Asha","phone":"9000000000","licenseId":"DL-9","active":false}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}
}

func TestDecodeTrip(t *testing.T) {
	body := `{"id":5,"ev":{"id":1,"registration":"KA01","model":"M","batteryCapacityKWh":40,
		"currentBatteryPercent":25,"status":"DRIVING"},"driver":{"id":2,"name":"Ravi","phone":"1",
		"licenseId":"L","active":true},"startTime":"2024-05-01T08:00:00","endTime":null,
		"status":"IN_PROGRESS","origin":"Depot","destination":null}`

	var trip Trip
	if err := json.Unmarshal([]byte(body), &trip); err != nil {
		t.Fatal(err)
	}
	if trip.EV.Registration != "KA01" || trip.Driver.Name != "Ravi" || trip.Status != TripStatusInProgress {
		t.Errorf("decoded %+v", trip)
	}
	if trip.Origin == nil || *trip.Origin != "Depot" || trip.Destination != nil || trip.EndTime != nil {
		t.Errorf("optional fields decoded wrongly: %+v", trip)
	}
}
