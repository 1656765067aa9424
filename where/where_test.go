package where

import (
	"path/filepath"
	"testing"

	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestWhere(t *testing.T) {
	Convey("Given a config path override", t, func() {
		t.Setenv(EnvConfigPath, "/tmp/seriesgenius-test")

		Convey("Config should return the override", func() {
			So(Config(), ShouldEqual, "/tmp/seriesgenius-test")
		})

		Convey("Logs should live under config", func() {
			So(Logs(), ShouldEqual, filepath.Join("/tmp/seriesgenius-test", "logs"))
		})

		Convey("Catalog should default to catalog.json under config", func() {
			viper.Set(key.CatalogPath, "")
			So(Catalog(), ShouldEqual, filepath.Join("/tmp/seriesgenius-test", "catalog.json"))
		})

		Convey("Catalog should honour catalog.path", func() {
			viper.Set(key.CatalogPath, "/srv/catalog.json")
			defer viper.Set(key.CatalogPath, "")
			So(Catalog(), ShouldEqual, "/srv/catalog.json")
		})
	})

	Convey("Cache-backed paths", t, func() {
		So(filepath.Base(Location()), ShouldEqual, "location.json")
		So(filepath.Base(Queries()), ShouldEqual, "queries.json")
	})
}
