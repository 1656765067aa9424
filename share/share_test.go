package share

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type stubSharer struct {
	err   error
	calls int
}

func (s *stubSharer) Share(context.Context, Request) error {
	s.calls++
	return s.err
}

func TestRequest(t *testing.T) {
	Convey("Share texts name the site", t, func() {
		request := NewRequest("Mountain Peak", "SeriesGenius", "https://seriesgenius.app/?content=4")
		So(request.Text, ShouldEqual, "Watch Mountain Peak on SeriesGenius")
		So(request.Title, ShouldEqual, "Mountain Peak")
		So(NewRequest("Mountain Peak", "", "").Text, ShouldEqual, "Watch Mountain Peak")
	})
}

func TestChain(t *testing.T) {
	Convey("Given a chain of three facilities", t, func() {
		native := &stubSharer{err: ErrUnavailable}
		clip := &stubSharer{err: errors.New("no display")}
		manual := &stubSharer{}

		chain := (&Chain{}).
			With(MethodNative, native).
			With(MethodClipboard, clip).
			With(MethodManual, manual)

		Convey("It falls through to the first facility that works", func() {
			So(chain.Share(context.Background(), Request{URL: "u"}), ShouldEqual, MethodManual)
			So(native.calls, ShouldEqual, 1)
			So(clip.calls, ShouldEqual, 1)
			So(manual.calls, ShouldEqual, 1)
		})

		Convey("It stops at the first success", func() {
			clip.err = nil
			So(chain.Share(context.Background(), Request{}), ShouldEqual, MethodClipboard)
			So(manual.calls, ShouldEqual, 0)
		})

		Convey("Total failure is swallowed", func() {
			manual.err = errors.New("closed")
			So(chain.Share(context.Background(), Request{}), ShouldEqual, MethodNone)
		})

		Convey("A cancelled context shares nothing", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			So(chain.Share(ctx, Request{}), ShouldEqual, MethodNone)
			So(native.calls, ShouldEqual, 0)
		})
	})

	Convey("Methods print their names", t, func() {
		So(MethodClipboard.String(), ShouldEqual, "clipboard")
		So(MethodNone.String(), ShouldEqual, "none")
	})
}

func TestNative(t *testing.T) {
	Convey("Given the native facility", t, func() {
		viper.Set(key.ShareNative, true)
		var ran *exec.Cmd
		native := &Native{
			goos:     constant.Android,
			lookPath: func(string) (string, error) { return "/bin/termux-share", nil },
			run:      func(cmd *exec.Cmd) error { ran = cmd; return nil },
		}
		request := NewRequest("Ocean", "SeriesGenius", "https://seriesgenius.app/?content=3")

		Convey("On Android it runs termux-share", func() {
			So(native.Share(context.Background(), request), ShouldBeNil)
			So(ran.Args, ShouldResemble, []string{"/bin/termux-share", "-a", "send"})
		})

		Convey("Elsewhere it is unavailable", func() {
			native.goos = constant.Linux
			So(errors.Is(native.Share(context.Background(), request), ErrUnavailable), ShouldBeTrue)
		})

		Convey("Without termux-share it is unavailable", func() {
			native.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
			So(errors.Is(native.Share(context.Background(), request), ErrUnavailable), ShouldBeTrue)
		})

		Convey("It can be disabled", func() {
			viper.Set(key.ShareNative, false)
			defer viper.Set(key.ShareNative, true)
			So(errors.Is(native.Share(context.Background(), request), ErrUnavailable), ShouldBeTrue)
			So(ran, ShouldBeNil)
		})
	})
}

func TestClipboard(t *testing.T) {
	Convey("Given a clipboard", t, func() {
		viper.Set(key.ShareClipboard, true)
		var copied string
		clip := &Clipboard{write: func(s string) error { copied = s; return nil }}

		Convey("It copies the link", func() {
			So(clip.Share(context.Background(), Request{URL: "https://seriesgenius.app/?content=1"}), ShouldBeNil)
			So(copied, ShouldEqual, "https://seriesgenius.app/?content=1")
		})

		Convey("It is unavailable without a clipboard", func() {
			clip.unsupported = true
			So(errors.Is(clip.Share(context.Background(), Request{}), ErrUnavailable), ShouldBeTrue)
		})
	})
}

func TestManual(t *testing.T) {
	Convey("Manual sharing prints the link", t, func() {
		var out bytes.Buffer
		So(NewManual(&out).Share(context.Background(), NewRequest("Ocean", "SeriesGenius", "https://x/?content=3")), ShouldBeNil)
		So(strings.Contains(out.String(), "https://x/?content=3"), ShouldBeTrue)

		So(errors.Is(NewManual(nil).Share(context.Background(), Request{}), ErrUnavailable), ShouldBeTrue)
	})
}
