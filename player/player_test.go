package player

import (
	"errors"
	"testing"

	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestNew(t *testing.T) {
	Convey("Given player names", t, func() {
		Convey("mpv is available", func() {
			element, err := New("MPV")
			So(err, ShouldBeNil)
			So(element, ShouldHaveSameTypeAs, &MPV{})
		})

		Convey("The configured player is used for an empty name", func() {
			viper.Set(key.Player, "mpv")
			element, err := New("")
			So(err, ShouldBeNil)
			So(element, ShouldNotBeNil)
		})

		Convey("Unknown players are rejected", func() {
			_, err := New("vlc")
			So(errors.Is(err, ErrUnknownPlayer), ShouldBeTrue)
		})
	})
}

func TestMPVCanPlayType(t *testing.T) {
	Convey("Given an mpv element", t, func() {
		mpv := NewMPV()

		Convey("Plain video and audio types play natively", func() {
			So(mpv.CanPlayType(constant.MimeMP4), ShouldBeTrue)
			So(mpv.CanPlayType("video/webm"), ShouldBeTrue)
			So(mpv.CanPlayType("audio/mpeg"), ShouldBeTrue)
			So(mpv.CanPlayType("text/html"), ShouldBeFalse)
		})

		Convey("HLS follows player.native_hls", func() {
			viper.Set(key.PlayerNativeHLS, false)
			So(mpv.CanPlayType(constant.MimeHLS), ShouldBeFalse)

			viper.Set(key.PlayerNativeHLS, true)
			So(mpv.CanPlayType(constant.MimeHLS), ShouldBeTrue)
			viper.Set(key.PlayerNativeHLS, false)
		})

		Convey("A fresh element has no process", func() {
			So(mpv.IsRunning(), ShouldBeFalse)
			So(mpv.Unload(), ShouldBeNil)
			So(mpv.Close(), ShouldBeNil)
		})

		Convey("Play reports blocked autoplay when disabled", func() {
			viper.Set(key.PlayerAutoplay, false)
			So(errors.Is(mpv.Play(), ErrAutoplayBlocked), ShouldBeTrue)
			viper.Set(key.PlayerAutoplay, true)
		})

		Convey("Load rejects unusable targets before starting mpv", func() {
			err := mpv.Load("-o=/etc/passwd", "evil")
			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
			So(mpv.IsRunning(), ShouldBeFalse)
		})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		valid, err := sanitizeMediaTarget("  https://cdn.example.com/movie.mp4 ")
		So(err, ShouldBeNil)
		So(valid, ShouldEqual, "https://cdn.example.com/movie.mp4")

		path, err := sanitizeMediaTarget("videos/../movie.mkv")
		So(err, ShouldBeNil)
		So(path, ShouldEqual, "movie.mkv")

		for _, bad := range []string{"", "--script=x.lua", "file:///etc/passwd", "https://a/\nb"} {
			_, err := sanitizeMediaTarget(bad)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle flattens whitespace", t, func() {
		So(sanitizeTitle(" Watch\tOne\n| Site\x00 "), ShouldEqual, "Watch One | Site")
	})
}

func TestEvents(t *testing.T) {
	Convey("Given an event listener", t, func() {
		var events []Event
		listener := NewEventListener("/tmp/unused.sock", func(e Event) {
			events = append(events, e)
		})

		Convey("Failed end-file events carry the mpv reason", func() {
			listener.dispatch([]byte(`{"event":"end-file","reason":"error","file_error":"unrecognized file format"}`))
			So(events, ShouldHaveLength, 1)
			So(events[0].Failed(), ShouldBeTrue)
			So(errors.Is(events[0].Err(), ErrUnsupported), ShouldBeTrue)
			So(events[0].Err().Error(), ShouldContainSubstring, "unrecognized file format")
		})

		Convey("Other end-file reasons are not failures", func() {
			listener.dispatch([]byte(`{"event":"end-file","reason":"stop"}`))
			So(events, ShouldHaveLength, 1)
			So(events[0].Failed(), ShouldBeFalse)
			So(events[0].Err(), ShouldBeNil)
		})

		Convey("Replies and garbage are ignored", func() {
			listener.dispatch([]byte(`{"data":null,"error":"success","request_id":1}`))
			listener.dispatch([]byte(`not json`))
			So(events, ShouldBeEmpty)
		})

		Convey("Stopping an unstarted listener is harmless", func() {
			So(func() { listener.Stop() }, ShouldNotPanic)
		})
	})

	Convey("Element errors reach the installed handler", t, func() {
		mpv := NewMPV()

		var got error
		mpv.OnError(func(err error) { got = err })
		mpv.handleEvent(Event{Name: "end-file", Reason: "error"})
		So(errors.Is(got, ErrUnsupported), ShouldBeTrue)

		got = nil
		mpv.OnError(nil)
		mpv.handleEvent(Event{Name: "end-file", Reason: "error"})
		So(got, ShouldBeNil)
	})
}

func TestSystemEmbedHost(t *testing.T) {
	Convey("NewEmbedHost follows player.embed_app", t, func() {
		viper.Set(key.PlayerEmbedApp, "firefox")
		host := NewEmbedHost()
		So(host.(SystemEmbedHost).App, ShouldEqual, "firefox")
		viper.Set(key.PlayerEmbedApp, "")
	})
}
