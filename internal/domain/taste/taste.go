// Package taste derives a user's genre and category preferences from
// their own playtime. The profile is recomputed fresh per request.
package taste

import (
	"sort"

	"github.com/plazor/steampicker/internal/domain/model"
)

// How many tags survive into the taste profile.
const (
	topGenres     = 8
	topCategories = 6
)

// accumulator tracks minutes-weighted tag frequency while preserving the
// order tags were first encountered in, so ties break stably.
type accumulator struct {
	weight map[string]float64
	order  []string
}

func newAccumulator() *accumulator {
	return &accumulator{weight: make(map[string]float64)}
}

func (a *accumulator) add(tag string, minutes float64) {
	if _, ok := a.weight[tag]; !ok {
		a.order = append(a.order, tag)
	}
	a.weight[tag] += minutes
}

func (a *accumulator) top(n int) []string {
	tags := make([]string, len(a.order))
	copy(tags, a.order)
	sort.SliceStable(tags, func(i, j int) bool {
		return a.weight[tags[i]] > a.weight[tags[j]]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

// Infer accumulates lifetime minutes per genre and category across library
// entries with known enrichment, then keeps the top 8 genres and top 6
// categories by accumulated weight.
func Infer(library []model.LibraryEntry, enriched map[int]model.EnrichedMetadata) model.TasteProfile {
	genres := newAccumulator()
	categories := newAccumulator()
	for _, g := range library {
		e, ok := enriched[g.AppID]
		if !ok {
			continue
		}
		minutes := float64(g.Minutes)
		for _, tag := range e.Genres {
			genres.add(tag, minutes)
		}
		for _, tag := range e.Categories {
			categories.add(tag, minutes)
		}
	}
	return model.TasteProfile{
		FavoriteGenres:     genres.top(topGenres),
		FavoriteCategories: categories.top(topCategories),
	}
}
