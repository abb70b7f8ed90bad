package models

// NotAvailable is the display placeholder for any missing upstream field
const NotAvailable = "N/A"

// CurrentStatus is the headline block of a live status
type CurrentStatus struct {
	FromStation        string `json:"fromStation"`
	ToStation          string `json:"toStation"`
	LastUpdate         string `json:"lastUpdate"`
	StatusMessage      string `json:"statusMessage"`
	CurrentDelay       string `json:"currentDelay"`
	LastCrossedStation string `json:"lastCrossedStation"`
	LastCrossedTime    string `json:"lastCrossedTime"`
	Speed              string `json:"speed"`
}

// NormalizedStatus is the display-ready live status of one train run
type NormalizedStatus struct {
	TrainNumber     string         `json:"trainNumber"`
	TrainName       string         `json:"trainName"`
	CurrentStatus   CurrentStatus  `json:"currentStatus"`
	NextStop        NextStop       `json:"nextStop"`
	DaysOfRun       []string       `json:"daysOfRun"`
	TrainType       string         `json:"trainType"`
	PantryCar       string         `json:"pantryCar"`
	FullRoute       []RouteStation `json:"fullRoute"`
	JourneyProgress float64        `json:"journeyProgress"`
}

// StatusForm represents the submitted status lookup form
type StatusForm struct {
	TrainNumber string `form:"train_number"`
	StartDay    string `form:"start_day"`
}
