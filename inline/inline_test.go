package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidfeed-cli/vidfeed/feed"
)

func someRecords() []feed.Record {
	return []feed.Record{
		{ID: "x1", Title: "Morning News", Thumbnail: "https://e/1.jpg"},
		{ID: "x2", Title: "Cooking Show", Thumbnail: "https://e/2.jpg"},
		{ID: "x3", Title: "Evening News", Thumbnail: "https://e/3.jpg"},
	}
}

func TestParseVideosFilter(t *testing.T) {
	Convey("ParseVideosFilter", t, func() {
		apply := func(description string) []feed.Record {
			filter, err := ParseVideosFilter(description)
			So(err, ShouldBeNil)
			selected, err := filter(someRecords())
			So(err, ShouldBeNil)
			return selected
		}

		Convey("all and empty keep everything", func() {
			So(apply("all"), ShouldHaveLength, 3)
			So(apply(""), ShouldHaveLength, 3)
		})

		Convey("first and last pick the boundary records", func() {
			So(apply("first")[0].ID, ShouldEqual, "x1")
			So(apply("last")[0].ID, ShouldEqual, "x3")
		})

		Convey("single index picks one record", func() {
			selected := apply("1")
			So(selected, ShouldHaveLength, 1)
			So(selected[0].ID, ShouldEqual, "x2")
		})

		Convey("range selects a slice", func() {
			selected := apply("0-1")
			So(selected, ShouldHaveLength, 2)
			So(selected[1].ID, ShouldEqual, "x2")
		})

		Convey("fuzzy pattern matches titles", func() {
			selected := apply("@news@")
			So(selected, ShouldHaveLength, 2)
			So(selected[0].ID, ShouldEqual, "x1")
			So(selected[1].ID, ShouldEqual, "x3")
		})

		Convey("out-of-range index yields nothing", func() {
			So(apply("9"), ShouldBeEmpty)
		})

		Convey("garbage is rejected", func() {
			_, err := ParseVideosFilter("not a filter")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty record list", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, nil)
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 0)
		})

		Convey("Should carry the record fields through", func() {
			var buf bytes.Buffer
			So(writeJson(&buf, someRecords()), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 3)
			So(output.Result[0].URL, ShouldEqual, "https://www.dailymotion.com/video/x1")
		})
	})
}
