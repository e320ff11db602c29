package logger_test

import (
	"context"
	"testing"

	"github.com/plazor/steampicker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitWithFormat(t *testing.T) {
	Convey("Given the supported console formats", t, func() {
		for _, format := range []string{"text", "pretty", "json", ""} {
			So(logger.InitWithFormat(format), ShouldBeNil)
		}

		Convey("Then an unknown format is rejected", func() {
			So(logger.InitWithFormat("xml"), ShouldNotBeNil)
		})
	})
}

func TestLevels(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then level strings parse", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("And named loggers log without panicking", func() {
			l := logger.Named("test")
			ctx := context.Background()
			l.Debug(ctx, "debug", logger.String("k", "v"))
			l.Info(ctx, "info", logger.Int("n", 1))
			l.Warn(ctx, "warn", logger.Float64("f", 1.5))
			l.Error(ctx, "error", logger.Any("x", struct{}{}))
		})
	})
}
