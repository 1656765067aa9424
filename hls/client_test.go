package hls

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bluenviron/gohlslib/v2/pkg/playlist"
	"github.com/seriesgenius/seriesgenius/player"
	"github.com/seriesgenius/seriesgenius/player/playertest"
	. "github.com/smartystreets/goconvey/convey"
)

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:4
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:4.000000,
segment0.ts
#EXTINF:4.000000,
segment1.ts
#EXT-X-ENDLIST
`

const multivariantPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360,CODECS="avc1.42c01e,mp4a.40.2"
low/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2500000,RESOLUTION=1280x720,CODECS="avc1.4d401f,mp4a.40.2"
mid/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=5000000,RESOLUTION=1920x1080,CODECS="avc1.640028,mp4a.40.2"
high/index.m3u8
`

func manifestServer() *httptest.Server {
	mux := http.NewServeMux()
	playlistHandler := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
			_, _ = io.WriteString(w, body)
		}
	}

	mux.HandleFunc("/vod/index.m3u8", playlistHandler(mediaPlaylist))
	mux.HandleFunc("/master.m3u8", playlistHandler(multivariantPlaylist))
	mux.HandleFunc("/low/index.m3u8", playlistHandler(mediaPlaylist))
	mux.HandleFunc("/mid/index.m3u8", playlistHandler(mediaPlaylist))
	mux.HandleFunc("/high/index.m3u8", playlistHandler(mediaPlaylist))
	mux.HandleFunc("/broken.m3u8", playlistHandler("<html>not a playlist</html>\n"))
	mux.HandleFunc("/gone.m3u8", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	return httptest.NewServer(mux)
}

func next(events <-chan Event) Event {
	select {
	case event := <-events:
		return event
	case <-time.After(5 * time.Second):
		So("timed out waiting for a stream event", ShouldBeEmpty)
		return Event{}
	}
}

func TestManifestClient(t *testing.T) {
	Convey("Given a manifest server", t, func() {
		server := manifestServer()
		defer server.Close()

		events := make(chan Event, 16)
		element := playertest.NewElement()
		newClient := func(options Options) *ManifestClient {
			options.HTTP = server.Client()
			return NewManifestClient(func(e Event) { events <- e }, options)
		}

		Convey("A media playlist is handed to the element as is", func() {
			client := newClient(Options{Retries: 1, Title: "Watch"})
			defer client.Destroy()

			So(client.Load(context.Background(), server.URL+"/vod/index.m3u8"), ShouldBeNil)
			So(client.Attach(element), ShouldBeNil)

			event := next(events)
			So(event.Type, ShouldEqual, EventManifestParsed)
			So(event.Variant.URL, ShouldEqual, server.URL+"/vod/index.m3u8")
			So(event.Variant.Live, ShouldBeFalse)
			So(element.Source(), ShouldEqual, server.URL+"/vod/index.m3u8")
			So(element.Title(), ShouldEqual, "Watch")
		})

		Convey("The element may be attached after the manifest is parsed", func() {
			client := newClient(Options{Retries: 1})
			defer client.Destroy()

			So(client.Load(context.Background(), server.URL+"/vod/index.m3u8"), ShouldBeNil)
			time.Sleep(200 * time.Millisecond)
			So(client.Attach(element), ShouldBeNil)

			So(next(events).Type, ShouldEqual, EventManifestParsed)
			So(element.Loads(), ShouldHaveLength, 1)
		})

		Convey("The highest variant is chosen from a multivariant playlist", func() {
			client := newClient(Options{Retries: 1})
			defer client.Destroy()

			So(client.Load(context.Background(), server.URL+"/master.m3u8"), ShouldBeNil)
			So(client.Attach(element), ShouldBeNil)

			event := next(events)
			So(event.Type, ShouldEqual, EventManifestParsed)
			So(event.Variant.URL, ShouldEqual, server.URL+"/high/index.m3u8")
			So(event.Variant.Bandwidth, ShouldEqual, 5000000)
		})

		Convey("The bandwidth cap is honoured", func() {
			client := newClient(Options{Retries: 1, MaxBandwidth: 3000000})
			defer client.Destroy()

			So(client.Load(context.Background(), server.URL+"/master.m3u8"), ShouldBeNil)
			So(client.Attach(element), ShouldBeNil)

			So(next(events).Variant.URL, ShouldEqual, server.URL+"/mid/index.m3u8")
		})

		Convey("Network failures are retried, then fatal", func() {
			client := newClient(Options{Retries: 2})
			defer client.Destroy()

			So(client.Load(context.Background(), server.URL+"/gone.m3u8"), ShouldBeNil)
			So(client.Attach(element), ShouldBeNil)

			first := next(events)
			So(first.Type, ShouldEqual, EventError)
			So(first.Error.Fatal, ShouldBeFalse)
			So(first.Error.Kind, ShouldEqual, NetworkError)

			last := next(events)
			So(last.Error.Fatal, ShouldBeTrue)
			So(last.Error.Kind, ShouldEqual, NetworkError)
			So(element.Loads(), ShouldBeEmpty)
		})

		Convey("Corrupt manifests are fatal manifest errors", func() {
			client := newClient(Options{Retries: 1})
			defer client.Destroy()

			So(client.Load(context.Background(), server.URL+"/broken.m3u8"), ShouldBeNil)
			So(client.Attach(element), ShouldBeNil)

			event := next(events)
			So(event.Error.Fatal, ShouldBeTrue)
			So(event.Error.Kind, ShouldEqual, ManifestError)
		})

		Convey("Element errors while attached are fatal media errors", func() {
			client := newClient(Options{Retries: 1})
			defer client.Destroy()

			So(client.Load(context.Background(), server.URL+"/vod/index.m3u8"), ShouldBeNil)
			So(client.Attach(element), ShouldBeNil)
			So(next(events).Type, ShouldEqual, EventManifestParsed)

			element.Fail(player.ErrUnsupported)
			event := next(events)
			So(event.Error.Kind, ShouldEqual, MediaError)
			So(errors.Is(event.Error, player.ErrUnsupported), ShouldBeTrue)
		})

		Convey("Destroy releases the element and is repeatable", func() {
			client := newClient(Options{Retries: 1})
			So(client.Load(context.Background(), server.URL+"/vod/index.m3u8"), ShouldBeNil)
			So(client.Attach(element), ShouldBeNil)
			So(next(events).Type, ShouldEqual, EventManifestParsed)

			client.Destroy()
			client.Destroy()

			So(element.Unloads(), ShouldEqual, 1)
			So(element.HasHandler(), ShouldBeFalse)
			So(errors.Is(client.Load(context.Background(), server.URL+"/vod/index.m3u8"), ErrDestroyed), ShouldBeTrue)
			So(errors.Is(client.Attach(element), ErrDestroyed), ShouldBeTrue)

			element.Fail(player.ErrUnsupported)
			select {
			case event := <-events:
				So(event, ShouldBeNil)
			case <-time.After(100 * time.Millisecond):
			}
		})
	})
}

func TestSessionWithManifestClient(t *testing.T) {
	Convey("Given a session using real manifest clients", t, func() {
		server := manifestServer()
		defer server.Close()

		element := playertest.NewElement()
		session := NewSession(element, NewFactory(Options{HTTP: server.Client(), Retries: 1}))

		changes := make(chan Status, 4)
		session.OnChange(func(s Status) { changes <- s })

		Convey("A good stream becomes ready", func() {
			So(session.Mount(context.Background(), server.URL+"/master.m3u8", "title"), ShouldBeNil)

			select {
			case status := <-changes:
				So(status.State, ShouldEqual, Ready)
			case <-time.After(5 * time.Second):
				So("no state change", ShouldBeEmpty)
			}
			So(element.Playing(), ShouldBeTrue)

			session.Detach()
			So(element.Unloads(), ShouldEqual, 1)
		})

		Convey("A missing stream fails with the stream message", func() {
			So(session.Mount(context.Background(), server.URL+"/gone.m3u8", "title"), ShouldBeNil)

			select {
			case status := <-changes:
				So(status.State, ShouldEqual, Errored)
				So(status.Message, ShouldEqual, ErrorMessage)
			case <-time.After(5 * time.Second):
				So("no state change", ShouldBeEmpty)
			}
			So(session.Live(), ShouldEqual, 0)
		})
	})
}

func TestSelectVariant(t *testing.T) {
	variants := []*playlist.MultivariantVariant{
		{Bandwidth: 2500000, URI: "mid.m3u8"},
		{Bandwidth: 800000, URI: "low.m3u8"},
		{Bandwidth: 5000000, URI: "high.m3u8"},
		{Bandwidth: 9000000},
	}

	Convey("SelectVariant", t, func() {
		chosen, ok := SelectVariant(variants, 0)
		So(ok, ShouldBeTrue)
		So(chosen.URI, ShouldEqual, "high.m3u8")

		chosen, _ = SelectVariant(variants, 1000000)
		So(chosen.URI, ShouldEqual, "low.m3u8")

		chosen, _ = SelectVariant(variants, 100)
		So(chosen.URI, ShouldEqual, "low.m3u8")

		_, ok = SelectVariant(nil, 0)
		So(ok, ShouldBeFalse)
	})
}

func TestResolveReference(t *testing.T) {
	Convey("Variant uris resolve against the manifest", t, func() {
		resolved, err := resolveReference("https://cdn.example.com/live/master.m3u8?token=1", "720p/index.m3u8")
		So(err, ShouldBeNil)
		So(resolved, ShouldEqual, "https://cdn.example.com/live/720p/index.m3u8")

		resolved, err = resolveReference("https://cdn.example.com/live/master.m3u8", "https://other.example.com/a.m3u8")
		So(err, ShouldBeNil)
		So(resolved, ShouldEqual, "https://other.example.com/a.m3u8")
	})
}
