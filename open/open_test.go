package open

import (
	"errors"
	"testing"

	"github.com/seriesgenius/seriesgenius/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	const link = "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&rel=0"

	Convey("Given an embed link", t, func() {
		Convey("Linux uses xdg-open by default", func() {
			cmd, err := Command(constant.Linux, link, "")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", link})
		})

		Convey("Linux runs a chosen app directly", func() {
			cmd, err := Command(constant.Linux, link, "firefox")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"firefox", link})
		})

		Convey("macOS goes through open", func() {
			cmd, err := Command(constant.Darwin, link, "Safari")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", "-a", "Safari", link})
		})

		Convey("Windows escapes ampersands for start", func() {
			cmd, err := Command(constant.Windows, link, "chrome")
			So(err, ShouldBeNil)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1^&rel=0")
		})

		Convey("Android uses termux-open", func() {
			cmd, err := Command(constant.Android, link, "")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"termux-open", link})
		})

		Convey("Unknown platforms are rejected", func() {
			_, err := Command("plan9", link, "")
			So(errors.Is(err, ErrUnsupportedOS), ShouldBeTrue)
		})
	})
}
