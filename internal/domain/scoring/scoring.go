// Package scoring filters and scores catalog candidates against a taste
// profile, producing a ranked recommendation list.
//
// The scorer is a transparent weighted sum over normalized terms. It is
// pure: identical inputs always produce identical scores and ordering
// given the same reference year.
package scoring

import (
	"math"
	"sort"

	"github.com/plazor/steampicker/internal/domain/model"
)

// DefaultTopN bounds the ranked list when the caller does not.
const DefaultTopN = 60

// Scoring weights and normalization constants.
const (
	weightRecent   = 0.30
	weightLifetime = 0.25
	weightGenre    = 0.20
	weightCategory = 0.10
	weightDiscount = 0.12
	weightNewness  = 0.08

	lifetimeCapMinutes = 200 * 60 // lifetime engagement saturates at 200h
	recentCapMinutes   = 20 * 60  // two-week engagement saturates at 20h

	maxAgeYears       = 12 // older titles need a rescue signal
	rescueDiscountPct = 40

	// Price penalty: every major unit above pricePenaltyFloor adds
	// 1/pricePenaltyScale, capped at pricePenaltyMax.
	pricePenaltyFloor = 40.0
	pricePenaltyScale = 200.0
	pricePenaltyMax   = 0.2

	unknownYearNewness = 0.5
)

// excludedCategories drops non-game entries before scoring.
var excludedCategories = map[string]struct{}{
	"Demo":         {},
	"SteamVR Tool": {},
	"Application":  {},
}

// Input pairs a candidate with the user's playtime signal for it.
// Both playtime fields are zero for items the user does not own.
type Input struct {
	Item      model.CandidateItem
	Minutes   int
	Minutes2W int
}

// Rank prefilters, scores, and orders candidates. The result is sorted
// descending by score, ties keeping input order, truncated to topN
// (DefaultTopN when non-positive).
func Rank(candidates []Input, enriched map[int]model.EnrichedMetadata, taste model.TasteProfile, nowYear, topN int) []model.ScoredCandidate {
	if topN <= 0 {
		topN = DefaultTopN
	}

	scored := make([]model.ScoredCandidate, 0, len(candidates))
	for _, in := range candidates {
		e, known := enriched[in.Item.AppID]
		if !keep(in, e, known, nowYear) {
			continue
		}
		sc := model.ScoredCandidate{
			CandidateItem: in.Item,
			Score:         scoreOne(in, e, known, taste, nowYear),
		}
		if known {
			meta := e
			sc.Enriched = &meta
		}
		scored = append(scored, sc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// keep applies the prefilter. A candidate is dropped when it lacks a name
// or header image, when it is an old title with neither recent playtime
// nor a large discount, or when it sits in an excluded category.
func keep(in Input, e model.EnrichedMetadata, known bool, nowYear int) bool {
	if in.Item.Name == "" || in.Item.Header == "" {
		return false
	}
	if known {
		old := e.ReleasedYear != nil && nowYear-*e.ReleasedYear > maxAgeYears
		hasRecent := in.Minutes2W > 0
		bigSale := e.DiscountPct >= rescueDiscountPct
		if old && !hasRecent && !bigSale {
			return false
		}
		for _, cat := range e.Categories {
			if _, drop := excludedCategories[cat]; drop {
				return false
			}
		}
	}
	return true
}

func scoreOne(in Input, e model.EnrichedMetadata, known bool, taste model.TasteProfile, nowYear int) float64 {
	recentNorm := math.Min(1, float64(in.Minutes2W)/recentCapMinutes)
	lifetimeNorm := math.Min(1, float64(in.Minutes)/lifetimeCapMinutes)

	var genreScore, catScore, disc, pricePenalty float64
	newness := unknownYearNewness
	if known {
		genreScore = affinity(e.Genres, taste.FavoriteGenres)
		catScore = affinity(e.Categories, taste.FavoriteCategories)
		disc = math.Max(0, math.Min(100, float64(e.DiscountPct))) / 100
		if e.ReleasedYear != nil {
			age := math.Max(0, float64(nowYear-*e.ReleasedYear))
			newness = 1 - math.Min(1, age/maxAgeYears)
		}
		if e.PriceCents != nil {
			major := float64(*e.PriceCents) / 100
			pricePenalty = math.Min(pricePenaltyMax, math.Max(0, (major-pricePenaltyFloor)/pricePenaltyScale))
		}
	}

	score := weightRecent*recentNorm +
		weightLifetime*lifetimeNorm +
		weightGenre*genreScore +
		weightCategory*catScore +
		weightDiscount*disc +
		weightNewness*newness -
		pricePenalty

	return math.Max(0, score)
}

// affinity is the matched-favorites fraction, capped at 1.
func affinity(tags, favorites []string) float64 {
	if len(favorites) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	matched := 0
	for _, f := range favorites {
		if _, ok := set[f]; ok {
			matched++
		}
	}
	return math.Min(1, float64(matched)/math.Max(1, float64(len(favorites))))
}
