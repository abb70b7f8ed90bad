package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"train-status-live/models"
)

type object = map[string]any

// Upstream key names. The upstream schema is unversioned, so every key the
// normalizer reads is declared here.
const (
	keySourceName      = "source_stn_name"
	keySourceCode      = "source"
	keyDestName        = "dest_stn_name"
	keyDestCode        = "destination"
	keyStatusAsOf      = "status_as_of"
	keyUpdateTime      = "update_time"
	keyStatus          = "status"
	keyDelay           = "delay"
	keyCurrentStation  = "current_station_name"
	keyCurrentETA      = "current_station_eta"
	keyAvgSpeed        = "avg_speed"
	keyAtDestination   = "at_dstn"
	keyPreviousList    = "previous_stations"
	keyUpcomingList    = "upcoming_stations"
	keyTrainNumber     = "train_number"
	keyTrainName       = "train_name"
	keyRunDays         = "run_days"
	keyTrainType       = "train_type"
	keyPantryAvailable = "pantry_available"

	keyStationCode    = "station_code"
	keyStationName    = "station_name"
	keyDistanceToGo   = "distance_from_current_station_txt"
	keyDistanceSource = "distance_from_source"
	keyETA            = "eta"
	keySTA            = "sta"
	keySTD            = "std"
	keyArrivalDelay   = "arrival_delay"
)

// Alternate key names per logical field, in priority order.
var platformKeys = []string{"platform_number", "platform_no", "platform", "pf"}

// statusDataPath leads from the page-data document to the status object.
var statusDataPath = []string{"props", "pageProps", "ltsData"}

func lookup(m object, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// stringField returns the display form of m[key], or N/A when it is missing.
func stringField(m object, key string) string {
	v, ok := lookup(m, key)
	if !ok {
		return models.NotAvailable
	}
	return displayValue(v)
}

func displayValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return models.NotAvailable
	default:
		return fmt.Sprint(t)
	}
}

// truthy follows JSON-ish truthiness: null, false, 0, "" and empty
// containers are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case object:
		return len(t) > 0
	default:
		return true
	}
}

func firstTruthy(m object, keys []string) (any, bool) {
	for _, key := range keys {
		if v := m[key]; truthy(v) {
			return v, true
		}
	}
	return nil, false
}

func integerField(m object, key string) (int64, bool) {
	v, ok := lookup(m, key)
	if !ok {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// delayText renders a delay in minutes: zero is "On Time", other integers
// are "<N> <unit>", anything else is N/A.
func delayText(m object, key, unit string) string {
	n, ok := integerField(m, key)
	if !ok {
		return models.NotAvailable
	}
	if n == 0 {
		return "On Time"
	}
	return fmt.Sprintf("%d %s", n, unit)
}

func listField(m object, key string) []any {
	v, _ := m[key].([]any)
	return v
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
