package store

import (
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultBaseURL     = "https://store.steampowered.com"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	breakerMaxRequests  = 3
	breakerInterval     = 60 * time.Second
	breakerTimeout      = 30 * time.Second
	breakerFailureCount = 5
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

// breakerDoer trips after consecutive transport failures so batch fetches
// degrade to misses quickly instead of waiting out timeouts per item.
// Non-2xx statuses are handled by the caller and do not count as failures.
type breakerDoer struct {
	cb   *gobreaker.CircuitBreaker[*http.Response]
	next httpDoer
}

func newBreakerDoer(next httpDoer) *breakerDoer {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "steam-store",
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureCount
		},
	})
	return &breakerDoer{cb: cb, next: next}
}

func (b *breakerDoer) Do(req *http.Request) (*http.Response, error) {
	return b.cb.Execute(func() (*http.Response, error) {
		return b.next.Do(req)
	})
}
