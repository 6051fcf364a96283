package feed

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseList(t *testing.T) {
	Convey("ParseList", t, func() {
		Convey("keeps well-formed elements in source order", func() {
			payload := []byte(`{"list":[
				{"id":"x1","title":"First","thumbnail_240_url":"https://e/1.jpg"},
				{"id":"x2","title":"Second","thumbnail_240_url":"https://e/2.jpg"},
				{"id":"x3","title":"Third","thumbnail_240_url":"https://e/3.jpg"}
			]}`)

			records, err := ParseList(payload)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 3)
			So(records[0].ID, ShouldEqual, "x1")
			So(records[1].Title, ShouldEqual, "Second")
			So(records[2].Thumbnail, ShouldEqual, "https://e/3.jpg")
		})

		Convey("silently drops elements missing a required field", func() {
			payload := []byte(`{"list":[
				{"id":"x1","title":"First","thumbnail_240_url":"https://e/1.jpg"},
				{"id":"x2","title":"No thumbnail"},
				{"title":"No id","thumbnail_240_url":"https://e/3.jpg"},
				{"id":"x4","title":"Fourth","thumbnail_240_url":"https://e/4.jpg"}
			]}`)

			records, err := ParseList(payload)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)
			So(records[0].ID, ShouldEqual, "x1")
			So(records[1].ID, ShouldEqual, "x4")
		})

		Convey("yields an empty feed when the only element is malformed", func() {
			payload := []byte(`{"list":[{"id":"x1","title":"Missing thumb"}]}`)

			records, err := ParseList(payload)
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)
		})

		Convey("fails on an undecodable payload", func() {
			_, err := ParseList([]byte(`{"list": not-json`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestWatchURL(t *testing.T) {
	Convey("WatchURL", t, func() {
		r := Record{ID: "x8abc12"}
		So(r.WatchURL(), ShouldEqual, "https://www.dailymotion.com/video/x8abc12")
	})
}
