// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/icon"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/log"
	"github.com/vidfeed-cli/vidfeed/session"
	"github.com/vidfeed-cli/vidfeed/style"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	records, err := feed.Fetch(context.Background())
	if err != nil {
		return err
	}

	// Narrow the catalog when a selector is present.
	selected := records
	if filter, ok := options.VideosFilter.Get(); ok {
		selected, err = filter(records)
		if err != nil {
			return err
		}
	}

	if options.Json {
		return writeJson(options.Out, selected)
	}

	if options.Play {
		return play(options.Out, selected)
	}

	for _, record := range selected {
		fmt.Fprintln(options.Out, record.WatchURL())
	}

	return nil
}

// play drives the selected records through the same sequential
// controller the TUI uses, without a rendering surface.
func play(out io.Writer, records []feed.Record) error {
	if len(records) == 0 {
		return nil
	}

	observer := &channelObserver{events: make(chan sessionEvent, 64)}

	controller := feed.New(func(index int, record feed.Record) feed.Session {
		s := session.New(index, record, observer)
		observer.sessions = append(observer.sessions, s)
		return s
	})
	defer func() {
		for _, s := range observer.sessions {
			_ = s.Close()
		}
	}()

	autoplay := viper.GetBool(key.FeedAutoplay)
	controller.Load(records)

	fmt.Fprintf(out, "%s Playing %s\n", icon.Get(icon.Play), style.Bold(records[0].Title))

	for msg := range observer.events {
		controller.OnSessionEvent(msg.index, msg.event)

		switch msg.event.Kind {
		case feed.KindStarted:
			log.Infof("inline: session %d started", msg.index)
		case feed.KindError:
			if msg.index == controller.CurrentIndex() {
				return fmt.Errorf("playback failed: %s", msg.event.Detail)
			}
		case feed.KindEnded:
			if msg.index != controller.CurrentIndex() {
				// The controller already advanced past this card.
				next := controller.Card(controller.CurrentIndex())
				fmt.Fprintf(out, "%s Playing %s\n", icon.Get(icon.Play), style.Bold(next.Record.Title))
				continue
			}
			if !autoplay || msg.index == controller.Len()-1 {
				fmt.Fprintf(out, "%s Done\n", icon.Get(icon.Success))
				return nil
			}
		}
	}

	return nil
}

type sessionEvent struct {
	index int
	event feed.Event
}

// channelObserver funnels session notifications into the run loop,
// keeping controller mutations single-threaded.
type channelObserver struct {
	events   chan sessionEvent
	sessions []*session.Session
}

func (o *channelObserver) OnSessionEvent(index int, event feed.Event) {
	o.events <- sessionEvent{index: index, event: event}
}

func writeJson(out io.Writer, records []feed.Record) error {
	data, err := asJson(records, viper.GetString(key.FeedEndpoint))
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
