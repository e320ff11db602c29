package store

// Raw storefront payload shapes. Loosely-typed upstream JSON is decoded
// into these validated records so missing fields fail closed to zero
// values instead of leaking downstream.

type featuredCategoriesResponse struct {
	TopSellers          bucket `json:"top_sellers"`
	Specials            bucket `json:"specials"`
	TrendingNewReleases bucket `json:"trending_new_releases"`
	PopularNewReleases  bucket `json:"popular_new_releases"`
	ComingSoon          bucket `json:"coming_soon"`
}

type bucket struct {
	Items []rawFeaturedItem `json:"items"`
}

type rawFeaturedItem struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	HeaderImage     string `json:"header_image"`
	DiscountPercent int    `json:"discount_percent"`
	FinalPrice      *int64 `json:"final_price"`
	OriginalPrice   *int64 `json:"original_price"`
}

// appDetailsResponse is keyed by the requested app id as a string.
type appDetailsResponse map[string]appDetailsEntry

type appDetailsEntry struct {
	Success bool            `json:"success"`
	Data    *appDetailsData `json:"data"`
}

type appDetailsData struct {
	Genres        []descriptor      `json:"genres"`
	Categories    []descriptor      `json:"categories"`
	ReleaseDate   *rawReleaseDate   `json:"release_date"`
	PriceOverview *rawPriceOverview `json:"price_overview"`
}

type descriptor struct {
	Description string `json:"description"`
}

type rawReleaseDate struct {
	Date string `json:"date"`
}

type rawPriceOverview struct {
	Currency        string `json:"currency"`
	Initial         int64  `json:"initial"`
	Final           int64  `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
}

type searchResultsResponse struct {
	TotalCount *int `json:"total_count"`
}
