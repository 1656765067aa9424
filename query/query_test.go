package query

import (
	"testing"

	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		So(Forget(), ShouldBeNil)

		So(Remember("cyber city", 1), ShouldBeNil)
		So(Remember("cyber punk", 10), ShouldBeNil)
		So(Remember("ocean", 3), ShouldBeNil)

		Convey("Suggestions are sorted by rank", func() {
			So(SuggestMany("cyb", 0), ShouldResemble, []string{"cyber punk", "cyber city"})
			So(Suggest("cyb").MustGet(), ShouldEqual, "cyber punk")
		})

		Convey("Remembering again raises the rank", func() {
			So(Remember("Cyber  City", 20), ShouldBeNil)
			So(Suggest("cyb").MustGet(), ShouldEqual, "cyber city")
		})

		Convey("The limit caps suggestions", func() {
			So(SuggestMany("c", 1), ShouldHaveLength, 1)
		})

		Convey("The input itself is not suggested", func() {
			So(SuggestMany("ocean", 0), ShouldBeEmpty)
		})

		Convey("Nothing is suggested when disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)
			So(Suggest("cyb").IsAbsent(), ShouldBeTrue)
		})

		Convey("Blank queries are not remembered", func() {
			So(Remember("   ", 5), ShouldBeNil)
			So(SuggestMany("", 0), ShouldHaveLength, 3)
		})
	})

	Convey("Input is sanitized", t, func() {
		So(sanitize("  Cyber   CITY "), ShouldEqual, "cyber city")
	})
}
