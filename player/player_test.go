package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestForName(t *testing.T) {
	Convey("ForName", t, func() {
		Convey("resolves mpv and defaults to it", func() {
			p, err := ForName("mpv")
			So(err, ShouldBeNil)
			So(p, ShouldHaveSameTypeAs, &MPV{})

			p, err = ForName("")
			So(err, ShouldBeNil)
			So(p, ShouldHaveSameTypeAs, &MPV{})
		})

		Convey("resolves iina", func() {
			p, err := ForName("IINA")
			So(err, ShouldBeNil)
			So(p, ShouldHaveSameTypeAs, &IINA{})
		})

		Convey("rejects unknown backends", func() {
			_, err := ForName("vlc")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("accepts http(s) URLs", func() {
			target, err := sanitizeMediaTarget("https://www.dailymotion.com/video/x8abc12")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "https://www.dailymotion.com/video/x8abc12")
		})

		Convey("rejects flag-shaped targets", func() {
			_, err := sanitizeMediaTarget("--script=/tmp/evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("rejects unsupported schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.org/a.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("rejects empty and control-character targets", func() {
			_, err := sanitizeMediaTarget("")
			So(err, ShouldNotBeNil)

			_, err = sanitizeMediaTarget("https://e.org/a\n.mp4")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle", t, func() {
		So(sanitizeTitle("A\nTitle\twith\rjunk\x00"), ShouldEqual, "A Title with junk")
	})
}
