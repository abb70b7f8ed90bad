package models

// NextStop describes the first upcoming station with a valid station code
type NextStop struct {
	StationName      string `json:"stationName"`
	DistanceToGo     string `json:"distanceToGo"`
	ExpectedArrival  string `json:"expectedArrival"`
	ExpectedDelay    string `json:"expectedDelay"`
	ExpectedPlatform string `json:"expectedPlatform"`
}

// RouteStation is one stop of the full route, in upstream order
type RouteStation struct {
	Station      string `json:"station"`
	ScheduledETA string `json:"scheduled_eta"`
	ExpectedETA  string `json:"expected_eta"`
	ETD          string `json:"etd"`
	DelayMin     *int64 `json:"delayMin"`
	DelayText    string `json:"delayText"`
	Platform     string `json:"platform"`
	Distance     string `json:"distance"`
}
