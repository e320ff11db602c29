// Package webapi is the client for the Steam Web API (player summaries,
// owned games, recently played games, vanity resolution).
package webapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/plazor/steampicker/internal/domain/model"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches player data and maps it to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a Web API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// PlayerSummary fetches the public profile for a SteamID64. A nil profile
// with a nil error means the upstream returned no player for the id.
func (c *Client) PlayerSummary(ctx context.Context, steamID string) (*model.PlayerProfile, error) {
	q := url.Values{"key": {c.apiKey}, "steamids": {steamID}}
	var payload playerSummariesResponse
	if err := c.getJSON(ctx, "/ISteamUser/GetPlayerSummaries/v2/", q, &payload); err != nil {
		return nil, err
	}
	if len(payload.Response.Players) == 0 {
		return nil, nil
	}
	return mapProfile(payload.Response.Players[0]), nil
}

// OwnedGames fetches the full owned list with appinfo and played free
// games included. The second return is the upstream-reported total count,
// nil when withheld.
func (c *Client) OwnedGames(ctx context.Context, steamID string) ([]model.LibraryEntry, *int, error) {
	q := url.Values{
		"key":                       {c.apiKey},
		"steamid":                   {steamID},
		"include_appinfo":           {"1"},
		"include_played_free_games": {"1"},
	}
	var payload ownedGamesResponse
	if err := c.getJSON(ctx, "/IPlayerService/GetOwnedGames/v1/", q, &payload); err != nil {
		return nil, nil, err
	}
	games := make([]model.LibraryEntry, 0, len(payload.Response.Games))
	for _, g := range payload.Response.Games {
		games = append(games, mapOwnedGame(g))
	}
	return games, payload.Response.GameCount, nil
}

// RecentlyPlayed fetches the upstream-capped recently played list.
func (c *Client) RecentlyPlayed(ctx context.Context, steamID string) ([]model.LibraryEntry, error) {
	q := url.Values{"key": {c.apiKey}, "steamid": {steamID}}
	var payload recentlyPlayedResponse
	if err := c.getJSON(ctx, "/IPlayerService/GetRecentlyPlayedGames/v1/", q, &payload); err != nil {
		return nil, err
	}
	games := make([]model.LibraryEntry, 0, len(payload.Response.Games))
	for _, g := range payload.Response.Games {
		games = append(games, mapRecentGame(g))
	}
	return games, nil
}

// ResolveVanity resolves a vanity alias to a SteamID64, or ErrNotFound.
func (c *Client) ResolveVanity(ctx context.Context, vanity string) (string, error) {
	q := url.Values{"key": {c.apiKey}, "vanityurl": {vanity}}
	var payload resolveVanityResponse
	if err := c.getJSON(ctx, "/ISteamUser/ResolveVanityURL/v1/", q, &payload); err != nil {
		return "", err
	}
	if payload.Response.Success != vanitySuccess || payload.Response.SteamID == "" {
		return "", ErrNotFound
	}
	return payload.Response.SteamID, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

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
