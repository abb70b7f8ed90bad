package services

import (
	"fmt"
	"strings"

	"train-status-live/models"
)

// normalizeStatus maps the upstream status object into its display shape.
// Every read defaults to N/A, so a sparse object still yields a full record.
func normalizeStatus(lts object) *models.NormalizedStatus {
	upcoming := listField(lts, keyUpcomingList)
	nextStop := buildNextStop(findNextStop(upcoming))
	route := buildRoute(listField(lts, keyPreviousList), upcoming)

	statusText := stringField(lts, keyStatus)
	arrived := truthy(lts[keyAtDestination]) || strings.Contains(strings.ToLower(statusText), "arrived")

	daysOfRun := []string{models.NotAvailable}
	if v := lts[keyRunDays]; truthy(v) {
		daysOfRun = splitList(displayValue(v))
	}

	pantry := "Not Available"
	if truthy(lts[keyPantryAvailable]) {
		pantry = "Available"
	}

	return &models.NormalizedStatus{
		TrainNumber: stringField(lts, keyTrainNumber),
		TrainName:   stringField(lts, keyTrainName),
		CurrentStatus: models.CurrentStatus{
			FromStation:        fmt.Sprintf("%s (%s)", stringField(lts, keySourceName), stringField(lts, keySourceCode)),
			ToStation:          fmt.Sprintf("%s (%s)", stringField(lts, keyDestName), stringField(lts, keyDestCode)),
			LastUpdate:         fmt.Sprintf("%s (%s)", stringField(lts, keyStatusAsOf), stringField(lts, keyUpdateTime)),
			StatusMessage:      statusText,
			CurrentDelay:       delayText(lts, keyDelay, "minutes"),
			LastCrossedStation: stringField(lts, keyCurrentStation),
			LastCrossedTime:    stringField(lts, keyCurrentETA),
			Speed:              stringField(lts, keyAvgSpeed) + " km/h",
		},
		NextStop:        nextStop,
		DaysOfRun:       daysOfRun,
		TrainType:       stringField(lts, keyTrainType),
		PantryCar:       pantry,
		FullRoute:       route,
		JourneyProgress: journeyProgress(route, nextStop.StationName, arrived),
	}
}

// validStation returns entries that are non-empty objects with a station code.
// Placeholder entries in the upstream lists are null or have an empty code.
func validStation(v any) (object, bool) {
	s, ok := v.(object)
	if !ok || len(s) == 0 || !truthy(s[keyStationCode]) {
		return nil, false
	}
	return s, true
}

func findNextStop(upcoming []any) object {
	for _, v := range upcoming {
		if s, ok := validStation(v); ok {
			return s
		}
	}
	return nil
}

func buildNextStop(s object) models.NextStop {
	if s == nil {
		return models.NextStop{
			StationName:      models.NotAvailable,
			DistanceToGo:     models.NotAvailable,
			ExpectedArrival:  models.NotAvailable,
			ExpectedDelay:    models.NotAvailable,
			ExpectedPlatform: models.NotAvailable,
		}
	}
	return models.NextStop{
		StationName:      stringField(s, keyStationName),
		DistanceToGo:     stringField(s, keyDistanceToGo),
		ExpectedArrival:  stringField(s, keyETA),
		ExpectedDelay:    delayText(s, keyArrivalDelay, "minutes"),
		ExpectedPlatform: ResolvePlatform(s),
	}
}

func buildRoute(previous, upcoming []any) []models.RouteStation {
	route := make([]models.RouteStation, 0, len(previous)+len(upcoming))
	for _, list := range [][]any{previous, upcoming} {
		for _, v := range list {
			s, ok := validStation(v)
			if !ok {
				continue
			}

			var delayMin *int64
			if n, ok := integerField(s, keyArrivalDelay); ok {
				delayMin = &n
			}

			route = append(route, models.RouteStation{
				Station:      stringField(s, keyStationName),
				ScheduledETA: stringField(s, keySTA),
				ExpectedETA:  stringField(s, keyETA),
				ETD:          stringField(s, keySTD),
				DelayMin:     delayMin,
				DelayText:    delayText(s, keyArrivalDelay, "min"),
				Platform:     ResolvePlatform(s),
				Distance:     stringField(s, keyDistanceSource) + " Kms",
			})
		}
	}
	return route
}

// journeyProgress estimates completion from the next stop's position in the
// route: index / (stations - 1) * 100. It does not account for distance or
// time between stations.
func journeyProgress(route []models.RouteStation, nextStopName string, arrived bool) float64 {
	total := len(route)
	if total <= 1 {
		return 0
	}
	if arrived {
		return 100
	}

	name := strings.TrimSpace(nextStopName)
	if name == "" || name == models.NotAvailable {
		return 0
	}
	for i, stop := range route {
		if strings.TrimSpace(stop.Station) == name {
			return float64(i) / float64(total-1) * 100
		}
	}
	return 0
}
