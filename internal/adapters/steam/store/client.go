// Package store is the client for the public storefront API
// (featured categories, per-app details, specials search).
package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/plazor/steampicker/internal/domain/model"
	"github.com/plazor/steampicker/internal/domain/valuation"
)

// Config controls how the client reaches the storefront.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches storefront data and maps it to domain models. All
// requests go through a circuit breaker so a misbehaving storefront
// fails fast instead of tying up fetch-pool workers.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a storefront client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: newBreakerDoer(resolveHTTPClient(cfg.HTTPClient)),
	}
}

// FeaturedBuckets fetches the promotional lists for a region and returns
// them in the fixed sampling order: top sellers, specials, trending new
// releases, popular new releases, coming soon.
func (c *Client) FeaturedBuckets(ctx context.Context, region string) ([][]model.CandidateItem, error) {
	q := url.Values{"l": {"en"}, "cc": {region}}
	var payload featuredCategoriesResponse
	if err := c.getJSON(ctx, "/api/featuredcategories/", q, nil, &payload); err != nil {
		return nil, err
	}
	return mapBuckets(payload), nil
}

// PriceOverview fetches the regional price for one app. A nil quote with
// a nil error marks an item without a price (free, delisted, or
// region-unavailable); errors cover transport and payload failures.
func (c *Client) PriceOverview(ctx context.Context, appID int, region string) (*valuation.PriceQuote, error) {
	q := url.Values{
		"appids":  {strconv.Itoa(appID)},
		"filters": {"price_overview"},
		"cc":      {region},
	}
	var payload appDetailsResponse
	if err := c.getJSON(ctx, "/api/appdetails", q, nil, &payload); err != nil {
		return nil, err
	}
	entry, ok := payload[strconv.Itoa(appID)]
	if !ok || !entry.Success || entry.Data == nil || entry.Data.PriceOverview == nil {
		return nil, nil
	}
	return &valuation.PriceQuote{
		Cents:        entry.Data.PriceOverview.Final,
		CurrencyCode: entry.Data.PriceOverview.Currency,
	}, nil
}

// AppDetails fetches descriptive metadata for one app. An unsuccessful
// per-item response is a valid upstream answer and yields the zero
// record; errors cover transport and payload failures only.
func (c *Client) AppDetails(ctx context.Context, appID int) (model.EnrichedMetadata, error) {
	q := url.Values{
		"appids":  {strconv.Itoa(appID)},
		"filters": {"categories,genres,release_date,price_overview"},
	}
	var payload appDetailsResponse
	if err := c.getJSON(ctx, "/api/appdetails", q, nil, &payload); err != nil {
		return model.ZeroEnriched(), err
	}
	entry, ok := payload[strconv.Itoa(appID)]
	if !ok || !entry.Success || entry.Data == nil {
		return model.ZeroEnriched(), nil
	}
	return mapEnriched(*entry.Data), nil
}

// SpecialsTotal reports how many items are currently on special, using
// the store search JSON endpoint with the featured-categories specials
// list length as a fallback.
func (c *Client) SpecialsTotal(ctx context.Context, region string) (int, error) {
	q := url.Values{
		"query":    {""},
		"specials": {"1"},
		"start":    {"0"},
		"count":    {"1"},
		"cc":       {region},
		"l":        {"en"},
		"json":     {"1"},
		"infinite": {"1"},
	}
	var payload searchResultsResponse
	err := c.getJSON(ctx, "/search/results/", q, searchHeaders(), &payload)
	if err == nil && payload.TotalCount != nil {
		return *payload.TotalCount, nil
	}

	var featured featuredCategoriesResponse
	if ferr := c.getJSON(ctx, "/api/featuredcategories", url.Values{"cc": {region}, "l": {"en"}}, nil, &featured); ferr != nil {
		if err != nil {
			return 0, err
		}
		return 0, ferr
	}
	return len(featured.Specials.Items), nil
}

// searchHeaders imitates a browser request; the search endpoint rejects
// plain API-style requests.
func searchHeaders() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125 Safari/537.36")
	h.Set("Accept", "application/json,text/plain,*/*")
	h.Set("X-Requested-With", "XMLHttpRequest")
	return h
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, headers http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}
	return nil
}
