package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"feedgate/internal/resilience/circuitbreaker"
	"feedgate/internal/resilience/retry"
)

// maxFetchBody caps how much of a feed document the validator will read.
const maxFetchBody = 10 << 20 // 10 MiB

// Fetched is the observed transport outcome for one feed download.
type Fetched struct {
	Body       []byte
	StatusCode int
	Header     http.Header
	LoadTime   time.Duration
}

// Fetcher downloads a feed document for validation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Fetched, error)
}

// HTTPFetcher fetches feed documents over HTTP with retry and a circuit
// breaker. Repeatedly failing endpoints trip the breaker so periodic sweeps
// skip them instead of hammering a dead host.
type HTTPFetcher struct {
	client  *http.Client
	retry   retry.Config
	breaker *circuitbreaker.CircuitBreaker
}

// NewHTTPFetcher creates an HTTPFetcher. A zero timeout defaults to 15s,
// within the 10-30s band expected for outbound validation calls.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		retry:   retry.ValidationFetchConfig(),
		breaker: circuitbreaker.New(circuitbreaker.ValidationFetchConfig()),
	}
}

// Fetch downloads the document at url, timing the full round trip.
// Non-2xx responses are returned as data, not errors: the validator reports
// them as findings. Transport failures are retried per the retry policy.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Fetched, error) {
	var fetched *Fetched

	err := retry.WithBackoff(ctx, f.retry, func() error {
		result, err := f.breaker.Execute(func() (interface{}, error) {
			return f.fetchOnce(ctx, url)
		})
		if err != nil {
			return err
		}
		fetched = result.(*Fetched)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return fetched, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (*Fetched, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "feedgate-validator/1.0")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Fetched{
		Body:       body,
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		LoadTime:   time.Since(start),
	}, nil
}
