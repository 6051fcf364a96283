package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a video record", t, func() {
		record := feed.Record{
			ID:        "x8abc12",
			Title:     "Some Video",
			Thumbnail: "https://e/1.jpg",
		}

		Convey("When saving the video", func() {
			err := Save(record, 42.0)

			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And the video should be saved", func() {
					videos, err := Get()
					So(err, ShouldBeNil)
					So(len(videos), ShouldBeGreaterThan, 0)
					So(videos[record.ID].Title, ShouldEqual, record.Title)
					So(videos[record.ID].WatchedPercentage, ShouldEqual, 42.0)
				})
			})
		})

		Convey("When saving a lower percentage afterwards", func() {
			So(Save(record, 80.0), ShouldBeNil)
			So(Save(record, 10.0), ShouldBeNil)

			Convey("Then the maximum observed percentage is kept", func() {
				videos, err := Get()
				So(err, ShouldBeNil)
				So(videos[record.ID].WatchedPercentage, ShouldEqual, 80.0)
			})
		})

		Convey("When removing the video", func() {
			So(Save(record, 5), ShouldBeNil)
			videos, _ := Get()
			So(Remove(videos[record.ID]), ShouldBeNil)

			videos, err := Get()
			So(err, ShouldBeNil)
			_, exists := videos[record.ID]
			So(exists, ShouldBeFalse)
		})
	})
}
