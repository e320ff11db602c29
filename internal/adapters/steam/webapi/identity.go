package webapi

import (
	"context"
	"regexp"
	"strings"
)

// Identity input shapes accepted by Resolve.
var (
	steamIDPattern    = regexp.MustCompile(`^\d{17}$`)
	profileURLPattern = regexp.MustCompile(`/profiles/(\d{17})`)
	vanityURLPattern  = regexp.MustCompile(`/id/([^/]+)`)
)

// IsSteamID reports whether s is a canonical 17-digit SteamID64. Every
// pipeline operation requires its input id to already satisfy this.
func IsSteamID(s string) bool {
	return steamIDPattern.MatchString(strings.TrimSpace(s))
}

// Resolve turns a raw identity string into a canonical SteamID64. It
// accepts a /profiles/ URL, a /id/ vanity URL, a bare 17-digit id, or a
// bare vanity alias looked up through the Web API. ErrNotFound is
// returned when the alias cannot be resolved.
func (c *Client) Resolve(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNotFound
	}
	if m := profileURLPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if IsSteamID(input) {
		return input, nil
	}
	vanity := input
	if m := vanityURLPattern.FindStringSubmatch(input); m != nil {
		vanity = m[1]
	}
	return c.ResolveVanity(ctx, vanity)
}
