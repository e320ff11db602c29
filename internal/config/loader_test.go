package config_test

import (
	"context"
	"testing"

	"github.com/plazor/steampicker/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given no overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.DefaultRegion, ShouldEqual, "US")
			So(cfg.EnrichConcurrency, ShouldEqual, 6)
			So(cfg.ValuationConcurrency, ShouldEqual, 8)
			So(cfg.MaxCandidates, ShouldEqual, 400)
			So(cfg.RecommendLimit, ShouldEqual, 60)
		})
	})

	Convey("Given environment overrides", t, func() {
		t.Setenv("STEAMPICKER_ADDR", ":9999")
		t.Setenv("STEAMPICKER_DEFAULT_REGION", "de")
		t.Setenv("STEAMPICKER_STEAM_API_KEY", "sekret")

		cfg, err := config.Load(context.Background())

		Convey("Then env wins over defaults and regions are uppercased", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9999")
			So(cfg.DefaultRegion, ShouldEqual, "DE")
			So(cfg.SteamAPIKey, ShouldEqual, "sekret")
		})
	})

	Convey("Given an explicitly empty addr", t, func() {
		t.Setenv("STEAMPICKER_ADDR", "")

		Convey("Then loading is rejected", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
