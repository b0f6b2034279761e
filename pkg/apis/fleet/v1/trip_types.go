package v1

// TripStatus is the lifecycle phase of a trip.
type TripStatus string

const (
	TripStatusPlanned    TripStatus = "PLANNED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// Trip is a journey of one vehicle with one driver. Trips are read-only for the
// console; the embedded vehicle and driver are snapshots taken by the API.
type Trip struct {
	ID     int64   `json:"id"`
	EV     Vehicle `json:"ev"`
	Driver Driver  `json:"driver"`

	StartTime string `json:"startTime"`
	// +optional
	EndTime *string `json:"endTime"`

	Status TripStatus `json:"status"`

	// +optional
	Origin *string `json:"origin"`
	// +optional
	Destination *string `json:"destination"`
}

func (t Trip) Identity() int64 { return t.ID }
