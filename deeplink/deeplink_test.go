package deeplink

import (
	"errors"
	"net/url"
	"testing"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/hls/hlstest"
	"github.com/seriesgenius/seriesgenius/playback"
	"github.com/seriesgenius/seriesgenius/player/playertest"
	. "github.com/smartystreets/goconvey/convey"
)

var _ playback.Mirror = (*Codec)(nil)

type panickingLocation struct{}

func (panickingLocation) Read() (url.Values, error) { panic("location unavailable") }
func (panickingLocation) Write(url.Values) error    { panic("location unavailable") }

func TestEncodeDecode(t *testing.T) {
	Convey("Given the sample catalog", t, func() {
		c := catalog.Sample()

		Convey("Encoding omits an empty episode", func() {
			So(Encode("1", "").Encode(), ShouldEqual, "content=1")
			So(Encode("2", "e2").Encode(), ShouldEqual, "content=2&episode=e2")
			So(Encode("", "e2"), ShouldBeEmpty)
		})

		Convey("A known content and episode decode to a playing selection", func() {
			selection, ok := Decode(Encode("2", "e2"), c)
			So(ok, ShouldBeTrue)
			So(selection, ShouldResemble, Selection{ContentID: "2", EpisodeID: "e2"})
			So(selection.Plays(), ShouldBeTrue)
		})

		Convey("An episode of another item is dropped", func() {
			selection, ok := Decode(Encode("2", "c1"), c)
			So(ok, ShouldBeTrue)
			So(selection.EpisodeID, ShouldBeEmpty)
			So(selection.Plays(), ShouldBeFalse)
		})

		Convey("Unknown or missing content does not decode", func() {
			_, ok := Decode(Encode("999", "e2"), c)
			So(ok, ShouldBeFalse)

			_, ok = Decode(url.Values{ParamEpisode: {"e2"}}, c)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestShareURL(t *testing.T) {
	Convey("Share URLs", t, func() {
		So(ShareURL("https://seriesgenius.app/", "2", "e2"), ShouldEqual, "https://seriesgenius.app/?content=2&episode=e2")
		So(ShareURL("https://seriesgenius.app/", "1", ""), ShouldEqual, "https://seriesgenius.app/?content=1")

		Convey("Keep unrelated parameters and replace old selections", func() {
			So(ShareURL("https://seriesgenius.app/watch?lang=en&episode=old", "1", ""), ShouldEqual,
				"https://seriesgenius.app/watch?content=1&lang=en")
		})

		Convey("Escape opaque ids", func() {
			So(ShareURL("https://seriesgenius.app/", "a b&c", ""), ShouldEqual, "https://seriesgenius.app/?content=a+b%26c")
		})
	})
}

func TestParseLink(t *testing.T) {
	Convey("Parsing pasted links", t, func() {
		values, err := ParseLink("https://seriesgenius.app/?content=2&episode=e2#top")
		So(err, ShouldBeNil)
		So(values.Encode(), ShouldEqual, "content=2&episode=e2")

		values, err = ParseLink("  content=4 ")
		So(err, ShouldBeNil)
		So(values.Get(ParamContent), ShouldEqual, "4")

		Convey("Unrelated parameters are dropped", func() {
			values, err := ParseLink("https://seriesgenius.app/?content=1&utm_source=x")
			So(err, ShouldBeNil)
			So(values.Encode(), ShouldEqual, "content=1")
		})

		Convey("Links without a selection are rejected", func() {
			_, err := ParseLink("https://seriesgenius.app/")
			So(errors.Is(err, ErrNoSelection), ShouldBeTrue)

			_, err = ParseLink("https://seriesgenius.app/?lang=en")
			So(errors.Is(err, ErrNoSelection), ShouldBeTrue)
		})
	})
}

func TestCodec(t *testing.T) {
	Convey("Given a codec over an address with other parameters", t, func() {
		location := NewMemoryLocation("lang=en")
		codec := NewCodec(location)

		Convey("Mirroring sets the selection and keeps the rest", func() {
			codec.Mirror("2", "e1")
			So(location.String(), ShouldEqual, "content=2&episode=e1&lang=en")

			codec.Mirror("1", "")
			So(location.String(), ShouldEqual, "content=1&lang=en")

			Convey("Clearing removes both parameters", func() {
				codec.Clear()
				So(location.String(), ShouldEqual, "lang=en")
			})
		})

		Convey("Write failures are swallowed", func() {
			location.WriteErr = errors.New("denied")
			So(func() { codec.Mirror("2", "e2") }, ShouldNotPanic)
			So(func() { codec.Clear() }, ShouldNotPanic)
			So(location.Writes(), ShouldEqual, 0)
		})
	})

	Convey("Given a location that panics", t, func() {
		codec := NewCodec(panickingLocation{})

		So(func() { codec.Mirror("2", "e2") }, ShouldNotPanic)
		So(func() { codec.Clear() }, ShouldNotPanic)

		var ok bool
		So(func() { _, ok = codec.Resolve(catalog.Sample()) }, ShouldNotPanic)
		So(ok, ShouldBeFalse)
	})

	Convey("Resolving runs once per catalog", t, func() {
		codec := NewCodec(NewMemoryLocation("content=2&episode=e2"))
		c := catalog.Sample()

		selection, ok := codec.Resolve(c)
		So(ok, ShouldBeTrue)
		So(selection.EpisodeID, ShouldEqual, "e2")

		_, ok = codec.Resolve(c)
		So(ok, ShouldBeFalse)

		_, ok = codec.Resolve(catalog.Sample())
		So(ok, ShouldBeTrue)
	})
}

func TestFileLocation(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		path := "/cache/seriesgenius/location.json"

		Convey("A missing file reads as an empty address", func() {
			values, err := NewFileLocation(path).Read()
			So(err, ShouldBeNil)
			So(values, ShouldBeEmpty)
		})

		Convey("Written addresses are read back by a fresh location", func() {
			So(NewFileLocation(path).Write(Encode("2", "e2")), ShouldBeNil)

			values, err := NewFileLocation(path).Read()
			So(err, ShouldBeNil)
			So(values.Encode(), ShouldEqual, "content=2&episode=e2")
		})

		Convey("A read-only filesystem does not break mirroring", func() {
			filesystem.SetReadOnly()
			defer filesystem.SetMemMapFs()

			codec := NewCodec(NewFileLocation(path))
			So(func() { codec.Mirror("2", "e2") }, ShouldNotPanic)
			So(func() { codec.Clear() }, ShouldNotPanic)
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given an engine mirroring into an address", t, func() {
		location := NewMemoryLocation("")
		codec := NewCodec(location)
		c := catalog.Sample()

		newEngine := func() *playback.Engine {
			return playback.New(playback.Options{
				Catalog: c,
				Element: playertest.NewElement(),
				Embeds:  &playertest.EmbedHost{},
				Streams: (&hlstest.Factory{}).New,
				Mirror:  codec,
			})
		}

		first := newEngine()
		So(first.OpenContent("2"), ShouldBeNil)
		So(first.SelectEpisode("e2"), ShouldBeNil)
		So(location.String(), ShouldEqual, "content=2&episode=e2")

		Convey("Decoding the address reproduces the selection and playback", func() {
			second := newEngine()
			selection, ok := codec.Resolve(c)
			So(ok, ShouldBeTrue)
			So(second.Restore(selection.ContentID, selection.EpisodeID), ShouldBeTrue)

			want, got := first.Snapshot(), second.Snapshot()
			So(got.ContentID, ShouldEqual, want.ContentID)
			So(got.EpisodeID, ShouldEqual, want.EpisodeID)
			So(got.State, ShouldEqual, playback.Playing)
			So(got.State, ShouldEqual, want.State)
		})

		Convey("An unknown content id leaves the default view", func() {
			codec := NewCodec(NewMemoryLocation("content=999"))
			engine := newEngine()

			_, ok := codec.Resolve(c)
			So(ok, ShouldBeFalse)
			So(engine.State(), ShouldEqual, playback.Preview)
			So(engine.Snapshot().ContentID, ShouldBeEmpty)
			So(c.Default().MustGet().ID, ShouldEqual, "1")
		})

		Convey("Closing content clears the address", func() {
			first.CloseContent()
			So(location.String(), ShouldBeEmpty)
		})
	})
}

func TestPreviewRoundTrip(t *testing.T) {
	Convey("Given a series opened but not played", t, func() {
		location := NewMemoryLocation("")
		codec := NewCodec(location)
		c := catalog.Sample()

		newEngine := func() *playback.Engine {
			return playback.New(playback.Options{
				Catalog: c,
				Element: playertest.NewElement(),
				Embeds:  &playertest.EmbedHost{},
				Streams: (&hlstest.Factory{}).New,
				Mirror:  codec,
			})
		}

		first := newEngine()
		So(first.OpenContent("2"), ShouldBeNil)
		So(first.State(), ShouldEqual, playback.Preview)
		So(location.String(), ShouldEqual, "content=2")

		Convey("Restoring the address stays in preview", func() {
			selection, ok := codec.Resolve(c)
			So(ok, ShouldBeTrue)
			So(selection.EpisodeID, ShouldBeEmpty)

			second := newEngine()
			So(second.Restore(selection.ContentID, selection.EpisodeID), ShouldBeTrue)
			So(second.State(), ShouldEqual, playback.Preview)
			So(second.Snapshot().ContentID, ShouldEqual, "2")
			So(location.String(), ShouldEqual, "content=2")
		})

		Convey("Playing and then closing the player leaves only the content", func() {
			So(first.RequestPlay(), ShouldBeNil)
			So(location.String(), ShouldEqual, "content=2&episode=e1")

			first.ClosePlayer()
			So(location.String(), ShouldEqual, "content=2")
		})
	})
}
