package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func mustDecode(t *testing.T, s string) object {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()
	var m object
	if err := decoder.Decode(&m); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return m
}

// statusPage wraps a status object in the page-data script the way the
// upstream site embeds it.
func statusPage(t *testing.T, lts any) string {
	t.Helper()
	doc := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{
				"ltsData": lts,
			},
		},
		"page": "/live-train-status/[train]",
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to encode page data: %v", err)
	}
	return fmt.Sprintf(`<!DOCTYPE html><html><head><title>Live status</title></head><body>
<div id="__next"></div>
<script id="__NEXT_DATA__" type="application/json">%s</script>
</body></html>`, payload)
}

type upstream struct {
	*httptest.Server
	hits      atomic.Int32
	userAgent atomic.Value
	path      atomic.Value
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		u.userAgent.Store(r.Header.Get("User-Agent"))
		u.path.Store(r.URL.RequestURI())
		handler(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

func servePage(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func newTestFetcher(baseURL string) *StatusFetcher {
	return NewStatusFetcher(baseURL, "test-agent/1.0", 2*time.Second, zap.NewNop().Sugar())
}

const wellFormedStatus = `{
	"train_number": "12345",
	"train_name": "Test Superfast Express",
	"source_stn_name": "Alpha Junction",
	"source": "ALJ",
	"dest_stn_name": "Echo Terminus",
	"destination": "ECT",
	"status_as_of": "5 mins ago",
	"update_time": "10:05",
	"status": "Departed from Bravo",
	"delay": 12,
	"current_station_name": "Bravo",
	"current_station_eta": "09:58",
	"avg_speed": 64,
	"run_days": "Mon,Wed,Fri",
	"train_type": "SF",
	"pantry_available": true,
	"previous_stations": [
		{"station_code": "ALJ", "station_name": "Alpha Junction", "sta": "08:00", "eta": "08:00", "std": "08:10", "arrival_delay": 0, "platform_number": 1, "distance_from_source": 0},
		{"station_code": "BRV", "station_name": "Bravo", "sta": "09:45", "eta": "09:58", "std": "10:00", "arrival_delay": 13, "platform_no": 2, "distance_from_source": 88}
	],
	"upcoming_stations": [
		null,
		{"station_code": "CHR", "station_name": "Charlie", "sta": "11:00", "eta": "11:12", "std": "11:05", "arrival_delay": 12, "platform": 3, "distance_from_source": 170, "distance_from_current_station_txt": "82 km to go"},
		{"station_code": "DLT", "station_name": "Delta", "sta": "12:30", "eta": "12:40", "std": "12:35", "arrival_delay": 10, "pf": 4, "distance_from_source": 260, "distance_from_current_station_txt": "172 km to go"},
		{"station_code": "ECT", "station_name": "Echo Terminus", "sta": "14:00", "eta": "14:05", "std": "14:00", "arrival_delay": 5, "platform_number": "5", "distance_from_source": 355, "distance_from_current_station_txt": "267 km to go"}
	]
}`
