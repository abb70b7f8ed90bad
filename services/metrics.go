package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "live_status_fetch_total",
		Help: "Number of live status lookups, by outcome",
	}, []string{"outcome"})
	fetchDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "live_status_fetch_seconds",
		Help: "Time spent fetching and normalizing a live status page",
	})
)

func init() {
	prometheus.MustRegister(fetchCount, fetchDuration)
}

func observeFetch(err error, elapsed time.Duration) {
	fetchCount.WithLabelValues(fetchOutcome(err)).Inc()
	if !errors.Is(err, ErrInvalidTrainNumber) {
		fetchDuration.Observe(elapsed.Seconds())
	}
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidTrainNumber):
		return "invalid_number"
	case errors.Is(err, ErrUpstreamFetch):
		return "upstream_error"
	case errors.Is(err, ErrPageDataMissing), errors.Is(err, ErrPageDataMalformed):
		return "bad_page"
	case errors.Is(err, ErrStatusDataMissing):
		return "no_status"
	default:
		return "normalize_error"
	}
}
