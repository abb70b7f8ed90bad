package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"train-status-live/models"
)

func TestFetchStatusRejectsInvalidTrainNumber(t *testing.T) {
	up := newUpstream(t, servePage(statusPage(t, json.RawMessage(wellFormedStatus))))
	fetcher := newTestFetcher(up.URL)

	before := testutil.ToFloat64(fetchCount.WithLabelValues("invalid_number"))

	inputs := []string{"", "1234", "123456", "12a45", " 1234", "12 45", "abcde", "1234５"}
	for _, input := range inputs {
		status, err := fetcher.FetchStatus(context.Background(), input, models.Today)
		if status != nil {
			t.Errorf("FetchStatus(%q) returned a status", input)
		}
		if !errors.Is(err, ErrInvalidTrainNumber) {
			t.Errorf("FetchStatus(%q) error = %v, want ErrInvalidTrainNumber", input, err)
		}
	}

	if hits := up.hits.Load(); hits != 0 {
		t.Errorf("expected no upstream requests, got %d", hits)
	}

	after := testutil.ToFloat64(fetchCount.WithLabelValues("invalid_number"))
	if after-before != float64(len(inputs)) {
		t.Errorf("invalid_number counter moved by %v, want %d", after-before, len(inputs))
	}
}

func TestFetchStatusWellFormedPage(t *testing.T) {
	up := newUpstream(t, servePage(statusPage(t, json.RawMessage(wellFormedStatus))))
	fetcher := newTestFetcher(up.URL)

	status, err := fetcher.FetchStatus(context.Background(), "12345", models.Yesterday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hits := up.hits.Load(); hits != 1 {
		t.Errorf("expected exactly one upstream request, got %d", hits)
	}
	if path := up.path.Load().(string); path != "/live-train-status/12345?start_day=1" {
		t.Errorf("requested %q", path)
	}
	if ua := up.userAgent.Load().(string); ua != "test-agent/1.0" {
		t.Errorf("user agent = %q", ua)
	}

	if status.TrainName != "Test Superfast Express" || status.NextStop.StationName != "Charlie" {
		t.Errorf("unexpected status %+v", status)
	}
	if status.JourneyProgress != 50 {
		t.Errorf("journey progress = %v", status.JourneyProgress)
	}

	encoded, err := json.Marshal(status)
	if err != nil {
		t.Fatalf("failed to encode status: %v", err)
	}
	if strings.Contains(string(encoded), models.NotAvailable) {
		t.Errorf("expected no placeholders for a complete payload, got %s", encoded)
	}
}

func TestFetchStatusFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: ErrUpstreamFetch,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantErr: ErrUpstreamFetch,
		},
		{
			name:    "missing script element",
			handler: servePage(`<html><body><p>Train not found</p></body></html>`),
			wantErr: ErrPageDataMissing,
		},
		{
			name:    "script without id",
			handler: servePage(`<html><body><script type="application/json">{"props":{}}</script></body></html>`),
			wantErr: ErrPageDataMissing,
		},
		{
			name:    "malformed json",
			handler: servePage(`<html><body><script id="__NEXT_DATA__">{"props": </script></body></html>`),
			wantErr: ErrPageDataMalformed,
		},
		{
			name:    "missing status object",
			handler: servePage(`<html><body><script id="__NEXT_DATA__">{"props": {"pageProps": {}}}</script></body></html>`),
			wantErr: ErrStatusDataMissing,
		},
		{
			name:    "empty status object",
			handler: servePage(`<html><body><script id="__NEXT_DATA__">{"props": {"pageProps": {"ltsData": {}}}}</script></body></html>`),
			wantErr: ErrStatusDataMissing,
		},
		{
			name:    "status object of wrong type",
			handler: servePage(`<html><body><script id="__NEXT_DATA__">{"props": {"pageProps": {"ltsData": "offline"}}}</script></body></html>`),
			wantErr: ErrStatusDataMissing,
		},
		{
			name:    "props of wrong type",
			handler: servePage(`<html><body><script id="__NEXT_DATA__">{"props": []}</script></body></html>`),
			wantErr: ErrStatusDataMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newUpstream(t, tt.handler)
			fetcher := newTestFetcher(up.URL)

			status, err := fetcher.FetchStatus(context.Background(), "12345", models.Today)
			if status != nil {
				t.Errorf("expected no status, got %+v", status)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if hits := up.hits.Load(); hits != 1 {
				t.Errorf("expected one upstream request and no retry, got %d", hits)
			}
		})
	}
}

func TestFetchStatusTimeout(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	})
	fetcher := NewStatusFetcher(up.URL, "test-agent/1.0", 50*time.Millisecond, zap.NewNop().Sugar())

	status, err := fetcher.FetchStatus(context.Background(), "12345", models.Today)
	if status != nil || !errors.Is(err, ErrUpstreamFetch) {
		t.Errorf("expected upstream fetch error, got %v / %v", status, err)
	}
}

func TestFetchStatusUnreachableUpstream(t *testing.T) {
	up := newUpstream(t, servePage(""))
	baseURL := up.URL
	up.Close()

	fetcher := newTestFetcher(baseURL)
	if _, err := fetcher.FetchStatus(context.Background(), "12345", models.Today); !errors.Is(err, ErrUpstreamFetch) {
		t.Errorf("expected upstream fetch error, got %v", err)
	}
}

func TestStatusURL(t *testing.T) {
	fetcher := newTestFetcher("https://www.railyatri.in/")
	got := fetcher.StatusURL("12951", models.DayBefore)
	if got != "https://www.railyatri.in/live-train-status/12951?start_day=2" {
		t.Errorf("StatusURL = %q", got)
	}
}

func TestNormalizeToleratesUnexpectedTypes(t *testing.T) {
	lts := mustDecode(t, `{"upcoming_stations": [{"station_code": "A", "station_name": "A", "arrival_delay": {"min": 3}}]}`)
	status, err := normalize(lts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.NextStop.ExpectedDelay != "N/A" {
		t.Errorf("expected delay placeholder, got %q", status.NextStop.ExpectedDelay)
	}
}

func TestFetchOutcome(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, "ok"},
		{ErrInvalidTrainNumber, "invalid_number"},
		{ErrUpstreamFetch, "upstream_error"},
		{ErrPageDataMissing, "bad_page"},
		{ErrPageDataMalformed, "bad_page"},
		{ErrStatusDataMissing, "no_status"},
		{ErrNormalize, "normalize_error"},
	}

	for _, tt := range tests {
		if got := fetchOutcome(tt.err); got != tt.expected {
			t.Errorf("fetchOutcome(%v) = %q, want %q", tt.err, got, tt.expected)
		}
	}
}
