package v1

// VehicleStatus is the operational status of an EV.
type VehicleStatus string

// These are the valid operational statuses of an EV.
const (
	VehicleStatusIdle        VehicleStatus = "IDLE"
	VehicleStatusDriving     VehicleStatus = "DRIVING"
	VehicleStatusCharging    VehicleStatus = "CHARGING"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

// VehicleStatuses lists the statuses in the order they are offered to users.
var VehicleStatuses = []VehicleStatus{
	VehicleStatusIdle,
	VehicleStatusDriving,
	VehicleStatusCharging,
	VehicleStatusMaintenance,
}

// VehicleSpec holds the client-submittable fields of a Vehicle.
type VehicleSpec struct {
	// Registration is the licence plate, e.g. "KA01AB1234".
	Registration string `json:"registration"`

	// Model is the manufacturer model name.
	Model string `json:"model"`

	// BatteryCapacityKWh is the usable pack capacity. Non-negative.
	BatteryCapacityKWh float64 `json:"batteryCapacityKWh"`

	// CurrentBatteryPercent is the state of charge, 0-100 inclusive.
	CurrentBatteryPercent float64 `json:"currentBatteryPercent"`

	Status VehicleStatus `json:"status"`

	// +optional
	LastKnownLatitude *float64 `json:"lastKnownLatitude"`
	// +optional
	LastKnownLongitude *float64 `json:"lastKnownLongitude"`
	// LastSeenAt is the server-formatted timestamp of the last telemetry report.
	// +optional
	LastSeenAt *string `json:"lastSeenAt"`
}

// Vehicle is an electric vehicle of the fleet.
type Vehicle struct {
	// ID is assigned by the API on creation.
	ID int64 `json:"id"`

	VehicleSpec `json:",inline"`
}

// Identity returns the server-assigned id.
func (v Vehicle) Identity() int64 { return v.ID }

// NewVehicleSpec returns the empty creation form.
func NewVehicleSpec() VehicleSpec {
	return VehicleSpec{
		CurrentBatteryPercent: 100,
		Status:                VehicleStatusIdle,
	}
}

// SetField assigns a form input to the named field, coercing text to the field's type.
func (s *VehicleSpec) SetField(name, value string) error {
	switch name {
	case "registration":
		s.Registration = value
	case "model":
		s.Model = value
	case "batteryCapacityKWh":
		return setNumber(&s.BatteryCapacityKWh, name, value)
	case "currentBatteryPercent":
		return setNumber(&s.CurrentBatteryPercent, name, value)
	case "status":
		return setEnum(&s.Status, name, value, VehicleStatuses)
	case "lastKnownLatitude":
		return setOptionalNumber(&s.LastKnownLatitude, name, value)
	case "lastKnownLongitude":
		return setOptionalNumber(&s.LastKnownLongitude, name, value)
	case "lastSeenAt":
		setOptionalString(&s.LastSeenAt, value)
	default:
		return unknownField("vehicle", name)
	}
	return nil
}
