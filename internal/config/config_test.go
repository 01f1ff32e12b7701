package config_test

import (
	"context"
	"testing"

	"github.com/fedegiraudo/inmatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.SQLitePath, convey.ShouldEqual, "inmatch.db")
			convey.So(cfg.DefaultMinScore, convey.ShouldEqual, 40)
			convey.So(cfg.SummaryMinScore, convey.ShouldEqual, 70)
			convey.So(cfg.MaxResults, convey.ShouldEqual, 100)
			convey.So(cfg.NeighborhoodGroups["Palermo"], convey.ShouldContain, "Palermo Soho")
		})
	})
}
