package config

import (
	"testing"

	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Defaults are populated", func() {
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.SiteName), ShouldEqual, "SeriesGenius")
			So(viper.GetInt(key.HLSRetries), ShouldEqual, 3)
		})

		Convey("EnvKeyReplacer converts dots to underscores", func() {
			So(EnvKeyReplacer.Replace("share.base_url"), ShouldEqual, "share_base_url")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.ShareBaseURL]

		Convey("Env carries the application prefix", func() {
			So(field.Env(), ShouldEqual, "SERIESGENIUS_SHARE_BASE_URL")
		})

		Convey("Type name follows the default value", func() {
			So(field.typeName(), ShouldEqual, "string")
			f := Default[key.HLSRetries]
			So(f.typeName(), ShouldEqual, "int")
		})

		Convey("Enumerated fields only accept their options", func() {
			icons := Default[key.IconsVariant]
			So(icons.Validate("nerd"), ShouldBeNil)
			So(icons.Validate("kaomoji"), ShouldNotBeNil)

			So(field.Validate("https://example.com/"), ShouldBeNil)
		})

		Convey("Pretty lists the options", func() {
			level := Default[key.LogsLevel]
			So(level.Pretty(), ShouldContainSubstring, "debug")
		})
	})
}
