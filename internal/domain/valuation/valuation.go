// Package valuation turns per-item price lookups into a single library
// value estimate.
package valuation

import (
	"strings"
)

// DefaultRegion is used when neither the caller nor geolocation supplies
// a country code.
const DefaultRegion = "US"

// Concurrency bounds the per-item price fetch fan-out.
const Concurrency = 8

// currencySymbols covers the storefront's common currencies; unknown
// codes fall back to the code itself.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// PriceQuote is one successfully fetched price in minor currency units.
// A nil quote in a batch marks a miss (free, delisted, region-unavailable,
// or a failed fetch).
type PriceQuote struct {
	Cents        int64
	CurrencyCode string
}

// Result is the outcome of one valuation run. Counted+Missed always
// equals Owned: every owned item is accounted for exactly once.
type Result struct {
	Region       string  `json:"cc"`
	Value        float64 `json:"value"`
	Currency     string  `json:"currency"`
	CurrencyCode string  `json:"currencyCode"`
	Counted      int     `json:"counted"`
	Missed       int     `json:"missed"`
	Owned        int     `json:"owned"`
}

// ResolveRegion picks the region code: explicit parameter, then the first
// non-empty geolocation hint, then fallback (DefaultRegion when empty).
// Codes are uppercased.
func ResolveRegion(explicit, fallback string, geoHints ...string) string {
	if cc := strings.TrimSpace(explicit); cc != "" {
		return strings.ToUpper(cc)
	}
	for _, hint := range geoHints {
		if cc := strings.TrimSpace(hint); cc != "" {
			return strings.ToUpper(cc)
		}
	}
	if fallback == "" {
		fallback = DefaultRegion
	}
	return strings.ToUpper(fallback)
}

// Tally sums the fetched quotes for a region. The currency is fixed from
// the first successfully priced item and assumed consistent across the
// batch. Quotes arrive in integer minor units, so the accumulated total
// is exact at cent precision and converts to major units without a
// rounding step.
func Tally(region string, quotes []*PriceQuote) Result {
	res := Result{Region: region, Owned: len(quotes)}

	var totalCents int64
	for _, q := range quotes {
		if q == nil {
			res.Missed++
			continue
		}
		res.Counted++
		totalCents += q.Cents
		if res.CurrencyCode == "" && q.CurrencyCode != "" {
			res.CurrencyCode = q.CurrencyCode
		}
	}

	if res.CurrencyCode == "" {
		res.CurrencyCode = fallbackCurrency(region)
	}
	res.Currency = SymbolFor(res.CurrencyCode)
	res.Value = float64(totalCents) / 100
	return res
}

// SymbolFor maps a currency code to its display symbol.
func SymbolFor(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

func fallbackCurrency(region string) string {
	if region == "IN" {
		return "INR"
	}
	return "USD"
}
