package feed

import (
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/log"
)

// Session is the controller-facing surface of one playback session.
// Start requests creation of the underlying player instance; the
// creation outcome and every later notification arrive asynchronously
// through the controller's OnSessionEvent entry point.
type Session interface {
	Start()
	Active() bool
}

// SessionFactory builds the dormant session bound to one record.
// The controller calls it at most once per card.
type SessionFactory func(index int, record Record) Session

// Card tracks the per-record transient state of the feed.
// Status strings are the two observable channels; the flags are reset
// whenever the card becomes the active index again.
type Card struct {
	Record Record

	VideoStatus string
	AdStatus    string

	videoEnded   bool
	postrollSeen bool
	activated    bool
	session      Session
}

// Activated reports whether a player-creation request was issued for this card.
func (c *Card) Activated() bool {
	return c.activated
}

// Controller owns the ordered catalog, the active index, and the
// sequential autoplay policy. It is not safe for concurrent use: every
// method must be called from the single coordinating loop, with
// session events marshaled in as messages.
type Controller struct {
	cards        []*Card
	currentIndex int
	factory      SessionFactory
	autoplay     bool
}

// New returns an empty controller using factory to build sessions.
// The autoplay policy is captured from configuration at construction time.
func New(factory SessionFactory) *Controller {
	return &Controller{
		factory:  factory,
		autoplay: viper.GetBool(key.FeedAutoplay),
	}
}

// Load replaces the feed contents. The current index resets to 0, one
// dormant card is built per record and, when the catalog is non-empty,
// the first session is activated. Loading an empty catalog is a no-op
// beyond clearing previous state.
func (c *Controller) Load(records []Record) {
	c.cards = make([]*Card, 0, len(records))
	for _, record := range records {
		c.cards = append(c.cards, &Card{
			Record:      record,
			VideoStatus: StatusUnset,
			AdStatus:    StatusUnset,
		})
	}
	c.currentIndex = 0

	if len(c.cards) > 0 {
		c.Activate(0)
	}
}

// Len returns the number of cards in the feed.
func (c *Controller) Len() int {
	return len(c.cards)
}

// CurrentIndex returns the single feed position currently authorized to autoplay.
func (c *Controller) CurrentIndex() int {
	return c.currentIndex
}

// Card returns the card at index, or nil when out of range.
func (c *Controller) Card(index int) *Card {
	if index < 0 || index >= len(c.cards) {
		return nil
	}
	return c.cards[index]
}

// Cards exposes the ordered card sequence for rendering.
func (c *Controller) Cards() []*Card {
	return c.cards
}

// Activate instructs the session at index to begin creating its player
// instance. Idempotent: a card that already issued its creation request
// is left untouched, so activating twice never spawns a second instance.
// Activating a non-current card does not move the current index.
func (c *Controller) Activate(index int) {
	card := c.Card(index)
	if card == nil || card.activated {
		return
	}

	card.activated = true
	if card.session == nil {
		card.session = c.factory(index, card.Record)
	}
	if card.session != nil {
		card.session.Start()
	}
}

// Advance moves the active index to the next card and activates it,
// resetting the new card's transient flags. At the last index it is a
// no-op: the feed never loops and never signals completion upward. The
// index is never decremented.
func (c *Controller) Advance() {
	if c.currentIndex+1 >= len(c.cards) {
		return
	}

	c.currentIndex++
	card := c.cards[c.currentIndex]
	card.videoEnded = false
	card.postrollSeen = false

	c.Activate(c.currentIndex)
}

// OnSessionEvent is the single entry point for every session lifecycle
// notification. The status of the originating card is updated through
// the deterministic event-to-label mapping; an ended event on the
// current index additionally advances the feed. Error events are logged
// and change nothing else: a failed video stays in place. Events from
// out-of-range indexes and unknown kinds are ignored.
func (c *Controller) OnSessionEvent(index int, event Event) {
	card := c.Card(index)
	if card == nil {
		return
	}

	if event.Kind == KindError {
		log.Errorf("feed: session %d (%s): %s", index, card.Record.ID, event.Detail)
		return
	}

	if text, ok := VideoStatusText(event.Kind); ok {
		card.VideoStatus = text
	} else if text, ok := AdStatusText(event.Kind); ok {
		card.AdStatus = text
		if event.Kind == KindAdEnded {
			card.postrollSeen = card.videoEnded
		}
		return
	} else {
		return
	}

	if event.Kind == KindEnded {
		card.videoEnded = true
		if index == c.currentIndex && c.autoplay {
			c.Advance()
		}
	}
}
