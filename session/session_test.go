package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/filesystem"
	"github.com/vidfeed-cli/vidfeed/history"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/player"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.HistorySaveOnWatch, false)
	viper.Set(key.Player, "mpv")
}

// fakeEngine satisfies player.Player without spawning anything.
type fakeEngine struct {
	mu            sync.Mutex
	opens         int
	openErr       error
	percentageErr error
	exited        chan struct{}
	closed        bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{exited: make(chan struct{})}
}

func (f *fakeEngine) Open(player.OpenOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	return f.openErr
}

func (f *fakeEngine) TogglePause() error { return nil }

func (f *fakeEngine) WatchedPercentage() (float64, error) { return 50, f.percentageErr }

func (f *fakeEngine) Snapshot() (player.Snapshot, error) {
	return player.Snapshot{}, errors.New("not supported")
}

func (f *fakeEngine) IsRunning() bool { return !f.closed }

func (f *fakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// A socket nothing listens on: the event listener fails fast and the
// session falls back to liveness-only reporting.
func (f *fakeEngine) Socket() string { return "/nonexistent/fake.sock" }

func (f *fakeEngine) Wait() <-chan struct{} { return f.exited }

// recorder collects observed events per index.
type recorder struct {
	events chan feed.Event
}

func newRecorder() *recorder {
	return &recorder{events: make(chan feed.Event, 16)}
}

func (r *recorder) OnSessionEvent(_ int, event feed.Event) {
	r.events <- event
}

func (r *recorder) next(timeout time.Duration) (feed.Event, bool) {
	select {
	case e := <-r.events:
		return e, true
	case <-time.After(timeout):
		return feed.Event{}, false
	}
}

func someRecord() feed.Record {
	return feed.Record{ID: "x1", Title: "A video", Thumbnail: "https://e/1.jpg"}
}

func TestStart(t *testing.T) {
	Convey("Start", t, func() {
		Convey("reports started and becomes active", func() {
			engine := newFakeEngine()
			observer := newRecorder()
			s := New(0, someRecord(), observer).WithFactory(func(string) (player.Player, error) {
				return engine, nil
			})

			s.Start()

			event, ok := observer.next(2 * time.Second)
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, feed.KindStarted)
			So(s.Active(), ShouldBeTrue)
		})

		Convey("creates exactly one engine instance no matter how often it is called", func() {
			engine := newFakeEngine()
			observer := newRecorder()
			s := New(0, someRecord(), observer).WithFactory(func(string) (player.Player, error) {
				return engine, nil
			})

			s.Start()
			s.Start()
			s.Start()

			_, ok := observer.next(2 * time.Second)
			So(ok, ShouldBeTrue)

			engine.mu.Lock()
			opens := engine.opens
			engine.mu.Unlock()
			So(opens, ShouldEqual, 1)
		})

		Convey("creation failure is reported as a classified error and the session is Failed", func() {
			engine := newFakeEngine()
			engine.openErr = errors.New("mpv error: unknown profile default-feed")
			observer := newRecorder()
			s := New(3, someRecord(), observer).WithFactory(func(string) (player.Player, error) {
				return engine, nil
			})

			s.Start()

			event, ok := observer.next(2 * time.Second)
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, feed.KindError)
			So(event.Detail, ShouldContainSubstring, "player id not found")
			So(s.State(), ShouldEqual, Failed)
		})
	})
}

func TestEngineExit(t *testing.T) {
	Convey("Engine exit without eof reads as ended", t, func() {
		engine := newFakeEngine()
		observer := newRecorder()
		s := New(0, someRecord(), observer).WithFactory(func(string) (player.Player, error) {
			return engine, nil
		})

		s.Start()
		_, ok := observer.next(2 * time.Second) // started
		So(ok, ShouldBeTrue)

		close(engine.exited)

		event, ok := observer.next(2 * time.Second)
		So(ok, ShouldBeTrue)
		So(event.Kind, ShouldEqual, feed.KindEnded)
		So(s.State(), ShouldEqual, Ended)
	})
}

func TestProgressPersistence(t *testing.T) {
	Convey("Watch progress", t, func() {
		viper.Set(key.HistorySaveOnWatch, true)
		defer viper.Set(key.HistorySaveOnWatch, false)

		startSession := func(record feed.Record, engine *fakeEngine) (*Session, *recorder) {
			observer := newRecorder()
			s := New(0, record, observer).WithFactory(func(string) (player.Player, error) {
				return engine, nil
			})

			s.Start()
			_, ok := observer.next(2 * time.Second) // started
			So(ok, ShouldBeTrue)
			return s, observer
		}

		Convey("an abandoned exit with an unqueryable engine records nothing", func() {
			record := feed.Record{ID: "x-abandoned", Title: "Left early", Thumbnail: "https://e/a.jpg"}
			engine := newFakeEngine()
			engine.percentageErr = errors.New("socket closed")

			_, observer := startSession(record, engine)
			close(engine.exited)

			event, ok := observer.next(2 * time.Second)
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, feed.KindEnded)

			saved, err := history.Get()
			So(err, ShouldBeNil)
			_, exists := saved[record.ID]
			So(exists, ShouldBeFalse)
		})

		Convey("eof persists the engine-reported percentage", func() {
			record := feed.Record{ID: "x-finished", Title: "Watched through", Thumbnail: "https://e/f.jpg"}
			engine := newFakeEngine()

			s, observer := startSession(record, engine)
			s.onEngineEvent("eof-reached", true)

			event, ok := observer.next(2 * time.Second)
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, feed.KindEnded)

			saved, err := history.Get()
			So(err, ShouldBeNil)
			entry, exists := saved[record.ID]
			So(exists, ShouldBeTrue)
			So(entry.WatchedPercentage, ShouldEqual, 50)
		})
	})
}

func TestEventTranslation(t *testing.T) {
	Convey("Engine property changes translate into the feed vocabulary", t, func() {
		observer := newRecorder()
		s := New(0, someRecord(), observer)

		cases := []struct {
			property string
			data     interface{}
			want     feed.Kind
		}{
			{"file-loaded", nil, feed.KindStarted},
			{"pause", true, feed.KindPaused},
			{"pause", false, feed.KindPlaying},
			{"seeking", true, feed.KindSeeking},
			{"paused-for-cache", true, feed.KindBuffering},
			{"paused-for-cache", false, feed.KindPlaying},
			{"playback-restart", nil, feed.KindPlaying},
		}

		for _, c := range cases {
			s.onEngineEvent(c.property, c.data)
			event, ok := observer.next(time.Second)
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, c.want)
		}

		Convey("eof-reached is terminal and fires once", func() {
			s.onEngineEvent("eof-reached", true)
			event, ok := observer.next(time.Second)
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, feed.KindEnded)

			s.onEngineEvent("eof-reached", true)
			_, ok = observer.next(100 * time.Millisecond)
			So(ok, ShouldBeFalse)
		})

		Convey("unknown properties are forwarded as unknown", func() {
			s.onEngineEvent("metadata", map[string]interface{}{})
			event, ok := observer.next(time.Second)
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, feed.KindUnknown)
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Close", t, func() {
		engine := newFakeEngine()
		observer := newRecorder()
		s := New(0, someRecord(), observer).WithFactory(func(string) (player.Player, error) {
			return engine, nil
		})

		s.Start()
		_, ok := observer.next(2 * time.Second)
		So(ok, ShouldBeTrue)

		Convey("terminates the engine and is idempotent", func() {
			So(s.Close(), ShouldBeNil)
			So(s.Close(), ShouldBeNil)
			So(engine.closed, ShouldBeTrue)
		})

		Convey("a closed session refuses to start again", func() {
			So(s.Close(), ShouldBeNil)
			s.Start()

			engine.mu.Lock()
			opens := engine.opens
			engine.mu.Unlock()
			So(opens, ShouldEqual, 1)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		cases := map[string]ErrorKind{
			"the ads module is missing":    ErrAdsModuleMissing,
			"property unavailable":         ErrStateUnavailable,
			"read timeout exceeded":        ErrTimeout,
			"dial: no such host":           ErrNoInternet,
			"unknown profile feed":         ErrPlayerIDNotFound,
			"mpv error: invalid parameter": ErrRemote,
			"bad request payload":          ErrRequest,
			"something else entirely":      ErrUnexpected,
		}

		for message, want := range cases {
			So(Classify(errors.New(message)), ShouldEqual, want)
		}

		So(Classify(nil), ShouldEqual, ErrUnexpected)
	})
}
