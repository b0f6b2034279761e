package v1

// StatusCount is one bucket of an aggregate "count by status" query.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AtRiskVehicle joins a vehicle's battery state with its upcoming or running trip.
// The API flags vehicles unlikely to finish the trip without charging.
type AtRiskVehicle struct {
	EVID                  int64   `json:"evId"`
	Registration          string  `json:"registration"`
	CurrentBatteryPercent float64 `json:"currentBatteryPercent"`
	// +optional
	LastSeenAt *string `json:"lastSeenAt"`

	TripID        int64  `json:"tripId"`
	TripStartTime string `json:"tripStartTime"`
	// +optional
	TripOrigin *string `json:"tripOrigin"`
	// +optional
	TripDestination *string `json:"tripDestination"`
}
