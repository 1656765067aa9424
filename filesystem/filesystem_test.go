package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Read-only backend rejects writes", func() {
			SetMemMapFs()
			So(API().WriteFile("/a.txt", []byte("x"), 0o644), ShouldBeNil)
			SetReadOnly()
			So(API().WriteFile("/b.txt", []byte("x"), 0o644), ShouldNotBeNil)

			data, err := API().ReadFile("/a.txt")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "x")
			SetMemMapFs()
		})
	})
}
