// Package session bridges one external player instance to the feed
// controller. A session forwards every engine notification, tagged with
// its originating index, to a single observer entry point; it never
// interprets events beyond translating the engine's property vocabulary.
package session

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/history"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/log"
	"github.com/vidfeed-cli/vidfeed/player"
)

// State models the lifecycle of one playback session.
type State int

const (
	Unstarted State = iota
	Active
	Ended
	Failed
)

// Observer receives every session notification, tagged with the
// session's index. Implementations are responsible for marshaling the
// call onto their own coordinating loop; sessions invoke it from
// background goroutines.
type Observer interface {
	OnSessionEvent(index int, event feed.Event)
}

// Factory builds the engine instance a session binds to. Swappable for tests.
type Factory func(name string) (player.Player, error)

// Session owns at most one external player instance for its lifetime.
type Session struct {
	index    int
	record   feed.Record
	observer Observer
	factory  Factory

	mu       sync.Mutex
	state    State
	engine   player.Player
	listener *player.EventListener
	started  bool
	closed   bool
	ended    bool
}

// New returns a dormant session bound to one record.
func New(index int, record feed.Record, observer Observer) *Session {
	return &Session{
		index:    index,
		record:   record,
		observer: observer,
		factory:  player.ForName,
	}
}

// WithFactory swaps the engine factory. Used by tests to inject fakes.
func (s *Session) WithFactory(factory Factory) *Session {
	s.factory = factory
	return s
}

// Start requests creation of the external player instance. It returns
// immediately; the creation outcome arrives later through the observer.
// A session that already issued its creation request ignores further
// calls: exactly one engine instance may ever exist per session.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.create()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active reports whether the engine instance is live.
func (s *Session) Active() bool {
	return s.State() == Active
}

// Record returns the video this session is bound to.
func (s *Session) Record() feed.Record {
	return s.record
}

// TogglePause inverts the engine's suspension state. The resulting
// property change flows back through the observer like any other event.
func (s *Session) TogglePause() error {
	s.mu.Lock()
	engine := s.engine
	s.mu.Unlock()

	if engine == nil {
		return fmt.Errorf("session %d: no engine instance", s.index)
	}
	return engine.TogglePause()
}

// WatchedPercentage queries the live engine for playback completion.
func (s *Session) WatchedPercentage() (float64, error) {
	s.mu.Lock()
	engine := s.engine
	s.mu.Unlock()

	if engine == nil {
		return 0, fmt.Errorf("session %d: no engine instance", s.index)
	}
	return engine.WatchedPercentage()
}

// Close tears the session down, stopping the listener and terminating
// the engine process. Cancellation on teardown is deliberate: an
// in-flight instance is never left orphaned when the feed goes away.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	listener := s.listener
	engine := s.engine
	s.mu.Unlock()

	if listener != nil {
		listener.Stop()
	}
	if engine != nil {
		return engine.Close()
	}
	return nil
}

// create spawns the engine and wires up event delivery. Runs off-loop;
// all outcomes are reported through the observer.
func (s *Session) create() {
	engine, err := s.factory(viper.GetString(key.Player))
	if err != nil {
		s.fail(err)
		return
	}

	extra := viper.GetStringSlice(key.PlayerCustomParams)
	if id := viper.GetString(key.PlayerID); id != "" {
		extra = append(extra, "--profile="+id)
	}

	err = engine.Open(player.OpenOptions{
		Target:    s.record.WatchURL(),
		VideoID:   s.record.ID,
		Title:     s.record.Title,
		Mute:      viper.GetBool(key.PlayerMute),
		ExtraArgs: extra,
	})
	if err != nil {
		s.fail(err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = engine.Close()
		return
	}
	s.engine = engine
	s.state = Active
	s.mu.Unlock()

	// IPC-capable engines report lifecycle through property observation;
	// the rest only report liveness, so playback starts now as far as
	// the feed can tell.
	listener := player.NewEventListener(engine.Socket(), s.onEngineEvent)
	if err := listener.Start(); err != nil {
		log.Warnf("session %d: event listener unavailable: %v", s.index, err)
		s.notify(feed.Event{Kind: feed.KindStarted})
	} else {
		s.mu.Lock()
		s.listener = listener
		s.mu.Unlock()
	}

	go s.watchExit(engine)
}

// watchExit treats engine termination as the end of playback when no
// eof notification preceded it (e.g. the user closed the window).
func (s *Session) watchExit(engine player.Player) {
	<-engine.Wait()

	if snapshot, err := engine.Snapshot(); err == nil {
		log.Debugf("session %d exit: id=%s title=%q duration=%.0f position=%.0f muted=%v",
			s.index, snapshot.VideoID, snapshot.Title, snapshot.Duration, snapshot.Position, snapshot.Muted)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	alreadyEnded := s.ended
	s.ended = true
	s.state = Ended
	s.mu.Unlock()

	// The process is gone; the percentage query can only succeed if it
	// was captured before exit. Never assume completion here: the user
	// may have closed the window at any point.
	s.saveProgress(false)

	if !alreadyEnded {
		s.notify(feed.Event{Kind: feed.KindEnded})
	}
}

// onEngineEvent translates the engine's property vocabulary into the
// feed's event vocabulary. Unknown properties are forwarded as unknown
// so the controller leaves the prior status untouched.
func (s *Session) onEngineEvent(property string, data interface{}) {
	flag, _ := data.(bool)

	switch property {
	case "file-loaded":
		s.notify(feed.Event{Kind: feed.KindStarted})
	case "pause":
		if flag {
			s.notify(feed.Event{Kind: feed.KindPaused})
		} else {
			s.notify(feed.Event{Kind: feed.KindPlaying})
		}
	case "seeking":
		if flag {
			s.notify(feed.Event{Kind: feed.KindSeeking})
		}
	case "paused-for-cache":
		if flag {
			s.notify(feed.Event{Kind: feed.KindBuffering})
		} else {
			s.notify(feed.Event{Kind: feed.KindPlaying})
		}
	case "playback-restart":
		s.notify(feed.Event{Kind: feed.KindPlaying})
	case "eof-reached":
		if !flag {
			return
		}

		s.mu.Lock()
		alreadyEnded := s.ended
		s.ended = true
		s.state = Ended
		s.mu.Unlock()

		if !alreadyEnded {
			s.saveProgress(true)
			s.notify(feed.Event{Kind: feed.KindEnded})
		}
	default:
		s.notify(feed.Event{Kind: feed.KindUnknown, Detail: property})
	}
}

// fail records a terminal creation failure. The card stays on its
// thumbnail; there is no retry.
func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state = Failed
	s.mu.Unlock()

	kind := Classify(err)
	log.Errorf("session %d (%s): %s: %v", s.index, s.record.ID, kind, err)
	s.notify(feed.Event{Kind: feed.KindError, Detail: fmt.Sprintf("%s: %v", kind, err)})
}

// saveProgress persists the watched percentage when history is enabled.
// assumeFull treats a failed engine query as a complete watch; only the
// eof path may set it, since eof is the one signal that guarantees the
// video actually finished. An abandoned exit with an unqueryable engine
// saves nothing rather than inflating the record.
func (s *Session) saveProgress(assumeFull bool) {
	if !viper.GetBool(key.HistorySaveOnWatch) {
		return
	}

	percentage, err := s.WatchedPercentage()
	if err != nil {
		if !assumeFull {
			return
		}
		percentage = 100
	}

	if err := history.Save(s.record, percentage); err != nil {
		log.Warnf("session %d: history save failed: %v", s.index, err)
	}
}

func (s *Session) notify(event feed.Event) {
	if s.observer != nil {
		s.observer.OnSessionEvent(s.index, event)
	}
}
