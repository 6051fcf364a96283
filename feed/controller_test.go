package feed

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/key"
)

func init() {
	viper.Set(key.FeedAutoplay, true)
}

type fakeSession struct {
	starts int
	active bool
}

func (s *fakeSession) Start() {
	s.starts++
	s.active = true
}

func (s *fakeSession) Active() bool {
	return s.active
}

// testController returns a controller whose factory records every
// created session, indexed by card position.
func testController() (*Controller, map[int]*fakeSession) {
	sessions := make(map[int]*fakeSession)
	controller := New(func(index int, _ Record) Session {
		s := &fakeSession{}
		sessions[index] = s
		return s
	})
	return controller, sessions
}

func someRecords(n int) []Record {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, Record{
			ID:        string(rune('a' + i)),
			Title:     "Video " + string(rune('A'+i)),
			Thumbnail: "https://example.org/thumb/" + string(rune('a'+i)),
		})
	}
	return records
}

func TestLoad(t *testing.T) {
	Convey("Load", t, func() {
		Convey("populates cards and activates the first session", func() {
			controller, sessions := testController()
			controller.Load(someRecords(5))

			So(controller.Len(), ShouldEqual, 5)
			So(controller.CurrentIndex(), ShouldEqual, 0)
			So(sessions[0].starts, ShouldEqual, 1)
			So(len(sessions), ShouldEqual, 1)

			for _, card := range controller.Cards() {
				So(card.VideoStatus, ShouldEqual, StatusUnset)
				So(card.AdStatus, ShouldEqual, StatusUnset)
			}
		})

		Convey("is a no-op on an empty catalog", func() {
			controller, sessions := testController()
			controller.Load(nil)

			So(controller.Len(), ShouldEqual, 0)
			So(len(sessions), ShouldEqual, 0)
			So(controller.Card(0), ShouldBeNil)
		})
	})
}

func TestActivate(t *testing.T) {
	Convey("Activate", t, func() {
		controller, sessions := testController()
		controller.Load(someRecords(3))

		Convey("is idempotent", func() {
			controller.Activate(0)
			controller.Activate(0)
			So(sessions[0].starts, ShouldEqual, 1)
		})

		Convey("a manually activated card does not steal the current index", func() {
			controller.Activate(2)
			So(sessions[2].starts, ShouldEqual, 1)
			So(controller.CurrentIndex(), ShouldEqual, 0)
		})

		Convey("ignores out-of-range indexes", func() {
			controller.Activate(-1)
			controller.Activate(99)
			So(len(sessions), ShouldEqual, 1)
		})
	})
}

func TestAdvance(t *testing.T) {
	Convey("Advance", t, func() {
		controller, sessions := testController()
		controller.Load(someRecords(2))

		Convey("moves to the next index and activates it", func() {
			controller.Advance()
			So(controller.CurrentIndex(), ShouldEqual, 1)
			So(sessions[1].starts, ShouldEqual, 1)
		})

		Convey("is a no-op at the last index", func() {
			controller.Advance()
			controller.Advance()
			So(controller.CurrentIndex(), ShouldEqual, 1)
			So(len(sessions), ShouldEqual, 2)
		})

		Convey("never decrements the index", func() {
			controller.Advance()
			before := controller.CurrentIndex()
			controller.Advance()
			So(controller.CurrentIndex(), ShouldBeGreaterThanOrEqualTo, before)
		})
	})
}

func TestOnSessionEvent(t *testing.T) {
	Convey("OnSessionEvent", t, func() {
		controller, sessions := testController()
		controller.Load(someRecords(5))

		Convey("started then ended advances the feed", func() {
			controller.OnSessionEvent(0, Event{Kind: KindStarted})
			So(controller.Card(0).VideoStatus, ShouldEqual, "start play")

			controller.OnSessionEvent(0, Event{Kind: KindEnded})
			So(controller.Card(0).VideoStatus, ShouldEqual, "end")
			So(controller.CurrentIndex(), ShouldEqual, 1)
			So(sessions[1].starts, ShouldEqual, 1)
		})

		Convey("ended from a non-current session updates its status only", func() {
			controller.OnSessionEvent(3, Event{Kind: KindEnded})
			So(controller.Card(3).VideoStatus, ShouldEqual, "end")
			So(controller.CurrentIndex(), ShouldEqual, 0)
			_, activated := sessions[1]
			So(activated, ShouldBeFalse)
		})

		Convey("ad events land on the ad channel", func() {
			controller.OnSessionEvent(0, Event{Kind: KindAdStarted})
			So(controller.Card(0).AdStatus, ShouldEqual, "start")
			So(controller.Card(0).VideoStatus, ShouldEqual, StatusUnset)

			controller.OnSessionEvent(0, Event{Kind: KindAdEnded})
			So(controller.Card(0).AdStatus, ShouldEqual, "end")
		})

		Convey("unknown events leave the prior status unchanged", func() {
			controller.OnSessionEvent(0, Event{Kind: KindPlaying})
			controller.OnSessionEvent(0, Event{Kind: KindUnknown})
			So(controller.Card(0).VideoStatus, ShouldEqual, "playing")
		})

		Convey("errors are terminal-and-local and never advance", func() {
			controller.OnSessionEvent(0, Event{Kind: KindError, Detail: "player id not found"})
			So(controller.Card(0).VideoStatus, ShouldEqual, StatusUnset)
			So(controller.CurrentIndex(), ShouldEqual, 0)
			_, activated := sessions[1]
			So(activated, ShouldBeFalse)
		})

		Convey("out-of-range indexes are ignored", func() {
			So(func() {
				controller.OnSessionEvent(42, Event{Kind: KindEnded})
			}, ShouldNotPanic)
			So(controller.CurrentIndex(), ShouldEqual, 0)
		})
	})
}

func TestStatusMapping(t *testing.T) {
	Convey("Status-text mapping is pure and total", t, func() {
		video := map[Kind]string{
			KindStarted:   "start play",
			KindPlaying:   "playing",
			KindPaused:    "pause",
			KindBuffering: "buffering",
			KindSeeking:   "seeking",
			KindEnded:     "end",
		}
		for kind, want := range video {
			got, ok := VideoStatusText(kind)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, want)
		}

		ad := map[Kind]string{
			KindAdStarted: "start",
			KindAdPaused:  "pause",
			KindAdPlaying: "play",
			KindAdEnded:   "end",
			KindAdLoaded:  "loaded",
			KindAdClicked: "clicked",
		}
		for kind, want := range ad {
			got, ok := AdStatusText(kind)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, want)
		}

		Convey("channels are disjoint", func() {
			for kind := range video {
				_, ok := AdStatusText(kind)
				So(ok, ShouldBeFalse)
			}
			_, ok := VideoStatusText(KindUnknown)
			So(ok, ShouldBeFalse)
		})
	})
}
