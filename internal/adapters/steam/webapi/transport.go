package webapi

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.steampowered.com"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient builds a client with the given timeout, falling back
// to the package default when the timeout is non-positive.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
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
