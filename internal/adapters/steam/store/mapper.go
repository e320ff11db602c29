package store

import (
	"regexp"
	"strings"

	"github.com/plazor/steampicker/internal/domain/model"
)

var yearToken = regexp.MustCompile(`^\d{4}$`)

// mapBuckets preserves the fixed sampling order. Header backfill for
// items without an image happens in the catalog sampler.
func mapBuckets(payload featuredCategoriesResponse) [][]model.CandidateItem {
	raw := [][]rawFeaturedItem{
		payload.TopSellers.Items,
		payload.Specials.Items,
		payload.TrendingNewReleases.Items,
		payload.PopularNewReleases.Items,
		payload.ComingSoon.Items,
	}
	out := make([][]model.CandidateItem, len(raw))
	for i, items := range raw {
		mapped := make([]model.CandidateItem, 0, len(items))
		for _, it := range items {
			mapped = append(mapped, mapFeaturedItem(it))
		}
		out[i] = mapped
	}
	return out
}

func mapFeaturedItem(it rawFeaturedItem) model.CandidateItem {
	name := it.Name
	if name == "" {
		name = "Unknown"
	}
	return model.CandidateItem{
		AppID:              it.ID,
		Name:               name,
		Header:             it.HeaderImage,
		DiscountPct:        it.DiscountPercent,
		PriceCents:         it.FinalPrice,
		OriginalPriceCents: it.OriginalPrice,
	}
}

func mapEnriched(data appDetailsData) model.EnrichedMetadata {
	e := model.EnrichedMetadata{
		Genres:     descriptions(data.Genres),
		Categories: descriptions(data.Categories),
	}
	if data.ReleaseDate != nil {
		e.ReleasedYear = parseReleaseYear(data.ReleaseDate.Date)
	}
	if data.PriceOverview != nil {
		final := data.PriceOverview.Final
		e.PriceCents = &final
		e.DiscountPct = data.PriceOverview.DiscountPercent
	}
	return e
}

func descriptions(ds []descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		if s := strings.TrimSpace(d.Description); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseReleaseYear takes the last whitespace/comma-delimited token of a
// free-text release date and accepts it only if it is exactly four digits.
func parseReleaseYear(raw string) *int {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
	if len(fields) == 0 {
		return nil
	}
	last := fields[len(fields)-1]
	if !yearToken.MatchString(last) {
		return nil
	}
	year := 0
	for _, r := range last {
		year = year*10 + int(r-'0')
	}
	return &year
}
