package valuation_test

import (
	"testing"

	"github.com/plazor/steampicker/internal/domain/valuation"
	. "github.com/smartystreets/goconvey/convey"
)

func quote(cents int64, code string) *valuation.PriceQuote {
	return &valuation.PriceQuote{Cents: cents, CurrencyCode: code}
}

func TestResolveRegion(t *testing.T) {
	Convey("Given region inputs", t, func() {
		Convey("An explicit parameter wins", func() {
			So(valuation.ResolveRegion("de", "", "FR"), ShouldEqual, "DE")
		})
		Convey("Geolocation hints are used in order", func() {
			So(valuation.ResolveRegion("", "", "gb", "FR"), ShouldEqual, "GB")
		})
		Convey("A configured fallback applies when nothing else is set", func() {
			So(valuation.ResolveRegion("", "in"), ShouldEqual, "IN")
		})
		Convey("Everything empty falls back to the default", func() {
			So(valuation.ResolveRegion("", "", ""), ShouldEqual, "US")
		})
	})
}

func TestTallyPrecision(t *testing.T) {
	Convey("Given quotes in odd minor units", t, func() {
		res := valuation.Tally("US", []*valuation.PriceQuote{
			quote(1, "USD"),
			quote(2, "USD"),
		})

		Convey("Then the cent sum converts exactly to major units", func() {
			So(res.Value, ShouldEqual, 0.03)
		})
	})
}

func TestTally(t *testing.T) {
	Convey("Given a batch with misses", t, func() {
		quotes := []*valuation.PriceQuote{
			quote(1999, "USD"),
			nil,
			quote(599, "USD"),
			nil,
			quote(0, "USD"),
		}

		Convey("When tallied", func() {
			res := valuation.Tally("US", quotes)

			Convey("Then every item is accounted for exactly once", func() {
				So(res.Counted, ShouldEqual, 3)
				So(res.Missed, ShouldEqual, 2)
				So(res.Owned, ShouldEqual, 5)
				So(res.Counted+res.Missed, ShouldEqual, res.Owned)
			})

			Convey("And the value sums minor units into major units", func() {
				So(res.Value, ShouldEqual, 25.98)
			})

			Convey("And the currency is fixed from the first priced item", func() {
				So(res.CurrencyCode, ShouldEqual, "USD")
				So(res.Currency, ShouldEqual, "$")
			})
		})
	})

	Convey("Given a later item reporting a different currency", t, func() {
		res := valuation.Tally("US", []*valuation.PriceQuote{quote(100, "EUR"), quote(100, "USD")})

		Convey("Then the first seen currency holds for the whole result", func() {
			So(res.CurrencyCode, ShouldEqual, "EUR")
		})
	})

	Convey("Given an empty library", t, func() {
		res := valuation.Tally("US", nil)

		Convey("Then the result is all zeroes with a regional currency default", func() {
			So(res.Value, ShouldEqual, 0)
			So(res.Counted, ShouldEqual, 0)
			So(res.Missed, ShouldEqual, 0)
			So(res.Owned, ShouldEqual, 0)
			So(res.CurrencyCode, ShouldEqual, "USD")
		})
	})

	Convey("Given the IN region with no priced items", t, func() {
		res := valuation.Tally("IN", []*valuation.PriceQuote{nil})

		Convey("Then the currency defaults to INR", func() {
			So(res.CurrencyCode, ShouldEqual, "INR")
			So(res.Currency, ShouldEqual, "₹")
		})
	})

	Convey("Given an unknown currency code", t, func() {
		res := valuation.Tally("BR", []*valuation.PriceQuote{quote(100, "BRL")})

		Convey("Then the symbol falls back to the code", func() {
			So(res.Currency, ShouldEqual, "BRL")
		})
	})
}
