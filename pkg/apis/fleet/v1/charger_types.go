package v1

// ChargerStatus is the availability of a charging point.
type ChargerStatus string

const (
	ChargerStatusAvailable ChargerStatus = "AVAILABLE"
	ChargerStatusInUse     ChargerStatus = "IN_USE"
	ChargerStatusFaulty    ChargerStatus = "FAULTY"
)

// ChargerStatuses lists the statuses in the order they are offered to users.
var ChargerStatuses = []ChargerStatus{
	ChargerStatusAvailable,
	ChargerStatusInUse,
	ChargerStatusFaulty,
}

// ChargerSpec holds the client-submittable fields of a Charger.
type ChargerSpec struct {
	LocationName string `json:"locationName"`

	// MaxPowerKW is the rated output. Non-negative.
	MaxPowerKW float64 `json:"maxPowerKW"`

	Status ChargerStatus `json:"status"`
}

// Charger is a charging point operated by the fleet.
type Charger struct {
	ID int64 `json:"id"`

	ChargerSpec `json:",inline"`
}

func (c Charger) Identity() int64 { return c.ID }

func NewChargerSpec() ChargerSpec {
	return ChargerSpec{Status: ChargerStatusAvailable}
}

func (s *ChargerSpec) SetField(name, value string) error {
	switch name {
	case "locationName":
		s.LocationName = value
	case "maxPowerKW":
		return setNumber(&s.MaxPowerKW, name, value)
	case "status":
		return setEnum(&s.Status, name, value, ChargerStatuses)
	default:
		return unknownField("charger", name)
	}
	return nil
}
