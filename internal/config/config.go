// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/plazor/steampicker/internal/domain/catalog"
	"github.com/plazor/steampicker/internal/domain/scoring"
	"github.com/plazor/steampicker/internal/domain/valuation"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the console handler: text, pretty, or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SteamAPIKey authenticates Web API calls (summaries, owned games,
	// vanity resolution). Storefront endpoints need no key.
	SteamAPIKey string `koanf:"steam_api_key"`

	// WebAPIBaseURL and StoreBaseURL override the upstream hosts,
	// primarily for tests.
	WebAPIBaseURL string `koanf:"webapi_base_url"`
	StoreBaseURL  string `koanf:"store_base_url"`

	// DefaultRegion is the country code used when neither the request
	// nor geolocation supplies one.
	DefaultRegion string `koanf:"default_region"`

	// ValuationConcurrency and EnrichConcurrency bound the per-item
	// fetch fan-outs.
	ValuationConcurrency int `koanf:"valuation_concurrency"`
	EnrichConcurrency    int `koanf:"enrich_concurrency"`

	// MaxCandidates caps one catalog sampling run.
	MaxCandidates int `koanf:"max_candidates"`

	// RecommendLimit caps the ranked recommendation list.
	RecommendLimit int `koanf:"recommend_limit"`

	// UpstreamTimeoutMS bounds each upstream HTTP round-trip.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":8080",
		DefaultRegion:        valuation.DefaultRegion,
		ValuationConcurrency: valuation.Concurrency,
		EnrichConcurrency:    6,
		MaxCandidates:        catalog.MaxCandidates,
		RecommendLimit:       scoring.DefaultTopN,
		UpstreamTimeoutMS:    10_000,
	}
}
