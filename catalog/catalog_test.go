package catalog

import (
	"errors"
	"testing"

	"github.com/seriesgenius/seriesgenius/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func single(id, url string) *Item {
	return &Item{ID: id, Kind: Single, Title: "Item " + id, PrimaryURL: url}
}

func episodic(id string, episodes ...*Episode) *Item {
	return &Item{ID: id, Kind: Episodic, Title: "Series " + id, Episodes: episodes}
}

func episode(id string, season, number int) *Episode {
	return &Episode{ID: id, Title: "Episode " + id, Season: season, Number: number, URL: "https://cdn.example.com/" + id + ".mp4"}
}

func TestNew(t *testing.T) {
	Convey("Given valid items", t, func() {
		source := []*Item{
			single("1", "https://cdn.example.com/1.mp4"),
			episodic("2", episode("e1", 1, 1), episode("e2", 1, 2)),
		}
		c, err := New(source)
		So(err, ShouldBeNil)

		Convey("The source slice does not alias the catalog", func() {
			source[0] = source[1]
			So(c.Items()[0].ID, ShouldEqual, "1")
		})

		Convey("Items keep catalog order", func() {
			So(c.Len(), ShouldEqual, 2)
			So(c.Items()[0].ID, ShouldEqual, "1")
			So(c.Default().MustGet().ID, ShouldEqual, "1")
		})

		Convey("Callers cannot reorder the catalog", func() {
			items := c.Items()
			items[0], items[1] = items[1], items[0]
			items[1] = nil

			So(c.Items()[0].ID, ShouldEqual, "1")
			So(c.Items()[1].ID, ShouldEqual, "2")
			So(c.Default().MustGet().ID, ShouldEqual, "1")
		})

		Convey("Items are looked up by id", func() {
			item, err := c.Item("2")
			So(err, ShouldBeNil)
			So(item.IsEpisodic(), ShouldBeTrue)

			_, err = c.Item("999")
			So(errors.Is(err, ErrUnknownContent), ShouldBeTrue)
		})

		Convey("Episodes are scoped to their parent", func() {
			ep, err := c.Episode("2", "e2")
			So(err, ShouldBeNil)
			So(ep.Code(), ShouldEqual, "S1:E2")

			_, err = c.Episode("1", "e2")
			So(errors.Is(err, ErrUnknownEpisode), ShouldBeTrue)

			_, err = c.Episode("999", "e2")
			So(errors.Is(err, ErrUnknownContent), ShouldBeTrue)
		})

		Convey("Episode owners are indexed", func() {
			So(c.Owner("e1").MustGet().ID, ShouldEqual, "2")
			So(c.Owner("nope").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Given an empty catalog", t, func() {
		c, err := New(nil)
		So(err, ShouldBeNil)
		So(c.Default().IsAbsent(), ShouldBeTrue)
		So(c.Rows(), ShouldBeEmpty)
	})

	Convey("Given invalid items", t, func() {
		cases := map[string][]*Item{
			"missing id":            {single("", "https://cdn.example.com/x.mp4")},
			"duplicate content":     {single("1", "a.mp4"), single("1", "b.mp4")},
			"single without url":    {single("1", "")},
			"single with episodes":  {{ID: "1", Kind: Single, PrimaryURL: "a.mp4", Episodes: []*Episode{episode("e1", 1, 1)}}},
			"episodic with url":     {{ID: "1", Kind: Episodic, PrimaryURL: "a.mp4"}},
			"unknown kind":          {{ID: "1", PrimaryURL: "a.mp4"}},
			"duplicate episode":     {episodic("1", episode("e1", 1, 1)), episodic("2", episode("e1", 1, 1))},
			"non-positive season":   {episodic("1", episode("e1", 0, 1))},
			"non-positive number":   {episodic("1", episode("e1", 1, -2))},
			"episode without an id": {episodic("1", episode("", 1, 1))},
		}

		Convey("Each is rejected", func() {
			for name, items := range cases {
				_, err := New(items)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrInvalid), ShouldBeTrue)
				_ = name
			}
		})
	})

	Convey("An episodic item without episodes is accepted", t, func() {
		c, err := New([]*Item{episodic("1")})
		So(err, ShouldBeNil)

		item, _ := c.Item("1")
		_, ok := item.FirstEpisode()
		So(ok, ShouldBeFalse)
	})
}

func TestKind(t *testing.T) {
	Convey("Kinds accept the legacy aliases", t, func() {
		var k Kind
		So(k.UnmarshalText([]byte("movie")), ShouldBeNil)
		So(k, ShouldEqual, Single)
		So(k.UnmarshalText([]byte("Series")), ShouldBeNil)
		So(k, ShouldEqual, Episodic)
		So(k.UnmarshalText([]byte("episodic")), ShouldBeNil)
		So(k, ShouldEqual, Episodic)
		So(k.UnmarshalText([]byte("podcast")), ShouldNotBeNil)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()

		Convey("A missing file yields the sample catalog", func() {
			c, err := Load("/nowhere/catalog.json")
			So(err, ShouldBeNil)
			So(c.Len(), ShouldEqual, Sample().Len())
		})

		Convey("A legacy array document is decoded", func() {
			doc := `[
				{"id": "1", "type": "movie", "title": "One", "videoUrl": "https://cdn.example.com/1.mp4"},
				{"id": "2", "type": "series", "title": "Two", "episodes": [
					{"id": "e1", "title": "Pilot", "season": 1, "episodeNumber": 1, "videoUrl": "https://cdn.example.com/e1.m3u8"}
				]}
			]`
			So(afero.WriteFile(filesystem.API(), "/catalog.json", []byte(doc), 0o644), ShouldBeNil)

			c, err := Load("/catalog.json")
			So(err, ShouldBeNil)
			So(c.Len(), ShouldEqual, 2)

			ep, err := c.Episode("2", "e1")
			So(err, ShouldBeNil)
			So(ep.Number, ShouldEqual, 1)
		})

		Convey("An object document is decoded", func() {
			doc := `{"items": [{"id": "1", "type": "single", "title": "One", "videoUrl": "a.mp4"}]}`
			So(afero.WriteFile(filesystem.API(), "/catalog.json", []byte(doc), 0o644), ShouldBeNil)

			c, err := Load("/catalog.json")
			So(err, ShouldBeNil)
			So(c.Len(), ShouldEqual, 1)
		})

		Convey("Malformed documents are reported", func() {
			So(afero.WriteFile(filesystem.API(), "/catalog.json", []byte("[{"), 0o644), ShouldBeNil)
			_, err := Load("/catalog.json")
			So(err, ShouldNotBeNil)
		})

		Convey("Saved catalogs load back", func() {
			So(Save("/saved.json", Sample()), ShouldBeNil)

			c, err := Load("/saved.json")
			So(err, ShouldBeNil)
			So(c.Len(), ShouldEqual, Sample().Len())

			ep, err := c.Episode("2", "e2")
			So(err, ShouldBeNil)
			So(ep.Title, ShouldEqual, "The Training")
		})
	})
}

func TestRows(t *testing.T) {
	Convey("Given the sample catalog", t, func() {
		rows := Sample().Rows()
		titles := make([]string, len(rows))
		for i, row := range rows {
			titles[i] = row.Title
		}

		Convey("All shelves are present in order", func() {
			So(titles, ShouldResemble, []string{
				"Trending Now",
				"TV Series",
				"Action & Adventure",
				"Critically Acclaimed Dramas",
				"Recently Added",
			})
		})

		Convey("Shelves hold the right items", func() {
			So(rows[1].Items, ShouldHaveLength, 2)
			So(rows[2].Items, ShouldHaveLength, 2)
			So(rows[4].Items[0].ID, ShouldEqual, "5")
			So(rows[4].Items, ShouldHaveLength, 5)
		})
	})

	Convey("Empty shelves are dropped", t, func() {
		c, err := New([]*Item{single("1", "a.mp4")})
		So(err, ShouldBeNil)

		rows := c.Rows()
		So(rows, ShouldHaveLength, 2)
		So(rows[0].Title, ShouldEqual, "Trending Now")
		So(rows[1].Title, ShouldEqual, "Recently Added")
	})
}

func TestSearch(t *testing.T) {
	Convey("Given the sample catalog", t, func() {
		c := Sample()

		Convey("Titles match case-insensitively", func() {
			results := c.Search("samurai")
			So(results, ShouldHaveLength, 1)
			So(results[0].ID, ShouldEqual, "3")
		})

		Convey("Genres match too", func() {
			So(c.Search("documentary"), ShouldHaveLength, 2)
		})

		Convey("Fuzzy title matches are included", func() {
			results := c.Search("cybcity")
			So(results, ShouldHaveLength, 1)
			So(results[0].ID, ShouldEqual, "2")
		})

		Convey("An empty query returns everything", func() {
			So(c.Search("  "), ShouldHaveLength, c.Len())
		})

		Convey("The search shelf is titled after the query", func() {
			So(c.SearchRow("kitchen").Title, ShouldEqual, `Search Results for "kitchen"`)
		})
	})
}

func TestLint(t *testing.T) {
	Convey("Given items with questionable urls", t, func() {
		c, err := New([]*Item{
			single("1", "https://www.youtube.com/watch?v=broken"),
			single("2", "https://youtu.be/dQw4w9WgXcQ"),
			episodic("3", &Episode{ID: "e1", Season: 1, Number: 1, URL: "https://vimeo.com/about"}),
			episodic("4"),
		})
		So(err, ShouldBeNil)

		warnings := c.Lint()

		Convey("Degraded provider links and empty series are reported", func() {
			So(warnings, ShouldHaveLength, 3)
			So(warnings[0].ContentID, ShouldEqual, "1")
			So(warnings[0].Message, ShouldContainSubstring, "youtube")
			So(warnings[1].EpisodeID, ShouldEqual, "e1")
			So(warnings[2].Message, ShouldEqual, "series has no episodes")
		})
	})

	Convey("The sample catalog is clean", t, func() {
		So(Sample().Lint(), ShouldBeEmpty)
	})
}
