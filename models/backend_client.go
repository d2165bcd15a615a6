package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	gobreaker "github.com/sony/gobreaker/v2"
)

// MovieBackend is what the search controller needs from the
// recommendation service.
type MovieBackend interface {
	Recommend(ctx context.Context, movie string) (*RecommendResponse, error)
	MoviesByGenre(ctx context.Context, genre string) (*GenreResponse, error)
}

const (
	endpointRecommend = "recommend"
	endpointGenre     = "movies_by_genre"

	// maxBodyBytes bounds how much of a backend response we will read.
	maxBodyBytes = 4 << 20
)

// BackendOptions configures a BackendClient.
type BackendOptions struct {
	BaseURL     string
	Timeout     time.Duration // defaults to 30s
	HTTPClient  *http.Client  // optional, overrides Timeout
	BreakerName string        // defaults to "recommend-backend"
}

// BackendClient talks JSON to the recommendation backend.
// Calls pass through a circuit breaker so a dead backend fails fast.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

var _ MovieBackend = (*BackendClient)(nil)

// NewBackendClient creates a client for the backend at opts.BaseURL.
func NewBackendClient(opts BackendOptions) *BackendClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BreakerName == "" {
		opts.BreakerName = "recommend-backend"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	CircuitBreakerState.WithLabelValues(opts.BreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        opts.BreakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			logger.Info("Backend circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	})

	return &BackendClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		breaker:    cb,
	}
}

// Recommend calls GET /recommend?movie=<movie>.
// A 4xx answer with a JSON body is not an error: the decoded response
// simply lacks SearchedMovie.
func (bc *BackendClient) Recommend(ctx context.Context, movie string) (*RecommendResponse, error) {
	var out RecommendResponse
	err := bc.getJSON(ctx, endpointRecommend, "/recommend", url.Values{"movie": {movie}}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MoviesByGenre calls GET /movies-by-genre?genre=<genre>.
func (bc *BackendClient) MoviesByGenre(ctx context.Context, genre string) (*GenreResponse, error) {
	var out GenreResponse
	err := bc.getJSON(ctx, endpointGenre, "/movies-by-genre", url.Values{"genre": {genre}}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (bc *BackendClient) getJSON(ctx context.Context, endpoint, path string, params url.Values, dst any) error {
	start := time.Now()
	body, err := bc.breaker.Execute(func() ([]byte, error) {
		return bc.fetch(ctx, path, params)
	})
	BackendLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		BackendRequests.WithLabelValues(endpoint, outcome).Inc()
		return serr.Wrap(err, "backend request failed")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		BackendRequests.WithLabelValues(endpoint, "error").Inc()
		return serr.Wrap(err, "failed to decode backend response")
	}

	BackendRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

// fetch performs the GET and returns the body. Server errors count
// against the breaker, client errors are handed back for decoding.
func (bc *BackendClient) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := bc.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create backend request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return nil, serr.Wrap(err, "backend request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, serr.Wrap(err, "failed to read backend response")
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, serr.New(fmt.Sprintf("backend returned status %d", resp.StatusCode))
	}

	return body, nil
}
