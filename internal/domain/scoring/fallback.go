package scoring

import (
	"math"
	"sort"

	"github.com/plazor/steampicker/internal/domain/model"
)

// rankDecrement keeps synthetic fallback scores strictly non-increasing
// down the list without disturbing the discount ordering.
const rankDecrement = 1e-6

// Fallback orders candidates by discount when the primary scorer cannot
// produce output: discount percent descending, then ascending price with
// a missing price treated as worst, then name lexicographically. Each
// entry carries a synthetic score derived from its discount and rank so
// consumers see the primary ranker's shape.
func Fallback(candidates []model.CandidateItem, topN int) []model.ScoredCandidate {
	if topN <= 0 {
		topN = DefaultTopN
	}

	ordered := make([]model.CandidateItem, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.DiscountPct != b.DiscountPct {
			return a.DiscountPct > b.DiscountPct
		}
		ap, bp := fallbackPrice(a), fallbackPrice(b)
		if ap != bp {
			return ap < bp
		}
		return a.Name < b.Name
	})
	if len(ordered) > topN {
		ordered = ordered[:topN]
	}

	out := make([]model.ScoredCandidate, len(ordered))
	for i, c := range ordered {
		disc := math.Max(0, math.Min(100, float64(c.DiscountPct))) / 100
		out[i] = model.ScoredCandidate{
			CandidateItem: c,
			Score:         math.Max(0, weightDiscount*disc-rankDecrement*float64(i)),
		}
	}
	return out
}

// fallbackPrice maps a missing price to the worst possible value.
func fallbackPrice(c model.CandidateItem) int64 {
	if c.PriceCents == nil {
		return math.MaxInt64
	}
	return *c.PriceCents
}
