// Package model contains domain models passed between layers.
package model

import "time"

// Visibility values reported by the player summary endpoint.
const (
	VisibilityPrivate = 1
	VisibilityPublic  = 3
)

// LibraryEntry is a single game in a user's library, owned or recently
// played. Minutes2W is only populated for recently played entries.
type LibraryEntry struct {
	AppID        int        `json:"appid"`
	Name         string     `json:"name"`
	Header       string     `json:"header"`
	Minutes      int        `json:"minutes"`
	Minutes2W    int        `json:"minutes2w,omitempty"`
	LastPlayedAt *time.Time `json:"lastPlayedAt,omitempty"`
}

// PlayerProfile mirrors the public fields of a player summary.
// A nil *PlayerProfile means the identity was unresolvable or fully private.
type PlayerProfile struct {
	PersonaName string     `json:"personaName"`
	Avatar      string     `json:"avatar"`
	ProfileURL  string     `json:"profileUrl"`
	Country     string     `json:"country,omitempty"`
	Visibility  int        `json:"visibility"`
	LastLogoff  *time.Time `json:"lastLogoff,omitempty"`
}

// OwnedRef is the slim ownership record used for fast membership checks.
type OwnedRef struct {
	AppID int `json:"appid"`
}

// Library is the aggregated view of a user's owned and recent games.
// TotalGames carries the upstream-reported count and stays nil when the
// owned-games fetch failed or withheld it.
type Library struct {
	TotalGames   *int           `json:"totalGames"`
	TotalMinutes int            `json:"totalMinutes"`
	NeverPlayed  int            `json:"neverPlayed"`
	TopGames     []LibraryEntry `json:"topGames"`
	RecentGames  []LibraryEntry `json:"recentGames"`
	OwnedGames   []OwnedRef     `json:"ownedGames"`
	AllGames     []LibraryEntry `json:"allGames"`
}

// OwnedSet returns the set of owned app ids for O(1) membership checks.
func (l *Library) OwnedSet() map[int]struct{} {
	set := make(map[int]struct{}, len(l.OwnedGames))
	for _, ref := range l.OwnedGames {
		set[ref.AppID] = struct{}{}
	}
	return set
}

// ProfileSnapshot is the product of one profile aggregation run. It is
// recreated per request and never persisted.
type ProfileSnapshot struct {
	SteamID   string         `json:"steamId"`
	IsPrivate bool           `json:"isPrivate"`
	Profile   *PlayerProfile `json:"profile"`
	Library   Library        `json:"library"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// CandidateItem is one promoted storefront item in a sampling run.
// Prices are minor currency units; nil means the storefront did not
// report one.
type CandidateItem struct {
	AppID              int    `json:"appid"`
	Name               string `json:"name"`
	Header             string `json:"header"`
	DiscountPct        int    `json:"discount_pct"`
	PriceCents         *int64 `json:"price_cents"`
	OriginalPriceCents *int64 `json:"original_price_cents"`
}

// EnrichedMetadata is the descriptive metadata attached to an item id.
// A zero-valued record substitutes for any per-item failure, so an
// enrichment map is always total over its requested id set.
type EnrichedMetadata struct {
	Genres       []string `json:"genres"`
	Categories   []string `json:"categories"`
	PriceCents   *int64   `json:"price_cents"`
	DiscountPct  int      `json:"discount_pct"`
	ReleasedYear *int     `json:"released_year"`
}

// ZeroEnriched returns the record used when per-item enrichment fails.
func ZeroEnriched() EnrichedMetadata {
	return EnrichedMetadata{Genres: []string{}, Categories: []string{}}
}

// TasteProfile is a user's preference vector, most-weighted tag first.
type TasteProfile struct {
	FavoriteGenres     []string `json:"favoriteGenres"`
	FavoriteCategories []string `json:"favoriteCategories"`
}

// IsZero reports whether no preference signal is present.
func (t TasteProfile) IsZero() bool {
	return len(t.FavoriteGenres) == 0 && len(t.FavoriteCategories) == 0
}

// ScoredCandidate is a candidate item plus its non-negative score and the
// enrichment it was scored against.
type ScoredCandidate struct {
	CandidateItem
	Score    float64           `json:"score"`
	Enriched *EnrichedMetadata `json:"enriched,omitempty"`
}

// Recommendation is the outcome of one recommendation run. Fallback is
// true when the discount-ordered list replaced the scored one.
type Recommendation struct {
	SteamID  string            `json:"steamId"`
	Region   string            `json:"cc"`
	Taste    TasteProfile      `json:"taste"`
	Fallback bool              `json:"fallback"`
	Items    []ScoredCandidate `json:"items"`
}
