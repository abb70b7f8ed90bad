package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"train-status-live/models"
)

var (
	ErrInvalidTrainNumber = errors.New("train number must be exactly 5 digits")
	ErrUpstreamFetch      = errors.New("fetching live status page failed")
	ErrPageDataMissing    = errors.New("page data script not found")
	ErrPageDataMalformed  = errors.New("page data is not valid JSON")
	ErrStatusDataMissing  = errors.New("status data missing from page data")
	ErrNormalize          = errors.New("normalizing status data failed")
)

// StatusFetcher scrapes the live status page of a train run.
type StatusFetcher struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

func NewStatusFetcher(baseURL, userAgent string, timeout time.Duration, logger *zap.SugaredLogger) *StatusFetcher {
	return &StatusFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(userAgent),
		},
		logger: logger,
	}
}

// StatusURL builds the upstream page URL for a train run.
func (f *StatusFetcher) StatusURL(trainNumber string, day models.DayOffset) string {
	return fmt.Sprintf("%s/live-train-status/%s?start_day=%s", f.baseURL, url.PathEscape(trainNumber), day)
}

// FetchStatus performs one GET against the status page and normalizes the
// embedded payload. There are no retries; every failure is returned as an
// error wrapping one of the package's sentinel errors.
func (f *StatusFetcher) FetchStatus(ctx context.Context, trainNumber string, day models.DayOffset) (status *models.NormalizedStatus, err error) {
	start := time.Now()
	defer func() {
		observeFetch(err, time.Since(start))
		if err != nil {
			f.logger.Warnw("live status unavailable", "train_number", trainNumber, "start_day", day, "error", err)
		}
	}()

	if !models.IsValidTrainNumber(trainNumber) {
		return nil, ErrInvalidTrainNumber
	}

	statusURL := f.StatusURL(trainNumber, day)
	f.logger.Infow("fetching live status", "train_number", trainNumber, "start_day", day, "url", statusURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUpstreamFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamFetch, resp.StatusCode)
	}

	lts, err := extractStatusData(resp.Body)
	if err != nil {
		return nil, err
	}

	return normalize(lts)
}

func normalize(lts object) (status *models.NormalizedStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, err = nil, fmt.Errorf("%w: %v", ErrNormalize, r)
		}
	}()
	return normalizeStatus(lts), nil
}

type browserTransport struct {
	UserAgent string
	base      http.RoundTripper
}

func (t *browserTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	request = request.Clone(request.Context())
	request.Header.Set("User-Agent", t.UserAgent)
	request.Header.Set("Accept", "text/html,application/xhtml+xml")

	return t.base.RoundTrip(request)
}

func newTransport(userAgent string) http.RoundTripper {
	return &browserTransport{
		UserAgent: userAgent,
		base:      http.DefaultTransport,
	}
}
