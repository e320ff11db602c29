// Package catalog builds a deduplicated candidate pool from promotional
// storefront buckets.
package catalog

import (
	"fmt"

	"github.com/plazor/steampicker/internal/domain/model"
)

// MaxCandidates caps the size of one sampling run.
const MaxCandidates = 400

const headerURLFormat = "https://shared.fastly.steamstatic.com/store_item_assets/steam/apps/%d/header.jpg"

// HeaderURL builds the deterministic header image URL for an app id.
func HeaderURL(appID int) string {
	return fmt.Sprintf(headerURLFormat, appID)
}

// Sample flattens buckets in their given order, de-duplicates by app id
// keeping the first occurrence, backfills missing header images, and
// truncates to max (MaxCandidates when max is non-positive).
func Sample(buckets [][]model.CandidateItem, max int) []model.CandidateItem {
	if max <= 0 {
		max = MaxCandidates
	}
	seen := make(map[int]struct{})
	out := make([]model.CandidateItem, 0, max)
	for _, bucket := range buckets {
		for _, it := range bucket {
			if it.AppID <= 0 {
				continue
			}
			if _, dup := seen[it.AppID]; dup {
				continue
			}
			seen[it.AppID] = struct{}{}
			if it.Header == "" {
				it.Header = HeaderURL(it.AppID)
			}
			out = append(out, it)
			if len(out) == max {
				return out
			}
		}
	}
	return out
}
