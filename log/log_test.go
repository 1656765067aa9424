package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/where"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logs.write is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Nothing is emitted", func() {
			Error("ignored")
			So(logger.IsLevelEnabled(logrus.ErrorLevel), ShouldBeFalse)
		})
	})

	Convey("Given logs.write is enabled", t, func() {
		t.Setenv(where.EnvConfigPath, "/tmp/seriesgenius-logs")
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "warn")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("Messages at or above the level land in today's file", func() {
			Info("hidden")
			Warnf("stream %s failed", "live.m3u8")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "stream live.m3u8 failed")
			So(string(data), ShouldNotContainSubstring, "hidden")
		})

		Convey("An unknown level falls back to info", func() {
			viper.Set(key.LogsLevel, "chatty")
			So(Setup(), ShouldBeNil)
			So(logger.GetLevel().String(), ShouldEqual, "info")
		})
	})
}
