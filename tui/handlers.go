package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/history"
	"github.com/vidfeed-cli/vidfeed/internal/ui"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/open"
)

// loadFeed fetches the catalog off-loop and funnels the outcome into the update loop.
func (b *statefulBubble) loadFeed() tea.Cmd {
	return func() tea.Msg {
		records, err := feed.Fetch(context.Background())
		if err != nil {
			b.errorChannel <- err
			return nil
		}

		b.recordsChannel <- records
		return nil
	}
}

// waitForRecords blocks on the catalog channel and republishes it as a message.
func (b *statefulBubble) waitForRecords() tea.Cmd {
	return func() tea.Msg {
		return recordsLoadedMsg(<-b.recordsChannel)
	}
}

// waitForSessionEvent blocks on the session event channel and republishes it as a message.
// The update loop re-arms it after every delivery, keeping the single-writer discipline.
func (b *statefulBubble) waitForSessionEvent() tea.Cmd {
	return func() tea.Msg {
		return <-b.sessionEventChannel
	}
}

// waitForError blocks on the error channel and republishes it as a message.
func (b *statefulBubble) waitForError() tea.Cmd {
	return func() tea.Msg {
		return <-b.errorChannel
	}
}

// syncFeedItems rebuilds the feed list items from the controller's cards.
// Items hold card pointers, so a rebuild is only needed when the catalog changes.
func (b *statefulBubble) syncFeedItems() tea.Cmd {
	items := lo.Map(b.controller.Cards(), func(card *feed.Card, index int) list.Item {
		return &listItem{internal: card, index: index, bubble: b}
	})
	return b.feedC.SetItems(items)
}

// activateSelected starts playback for the highlighted card. Activating a
// card other than the current one is refused when manual activation is
// disabled; an activated one is a no-op by controller idempotence.
func (b *statefulBubble) activateSelected() tea.Cmd {
	item, ok := b.feedC.SelectedItem().(*listItem)
	if !ok {
		return nil
	}

	if item.index != b.controller.CurrentIndex() && !viper.GetBool(key.FeedManualActivation) {
		return ui.Notify("Manual activation is disabled (feed.manual_activation)")
	}

	b.controller.Activate(item.index)
	return nil
}

// togglePauseCurrent flips the pause state of the selected card's engine.
func (b *statefulBubble) togglePauseCurrent() tea.Cmd {
	item, ok := b.feedC.SelectedItem().(*listItem)
	if !ok {
		return nil
	}

	s, exists := b.sessions[item.index]
	if !exists || !s.Active() {
		return ui.Notify("No active playback on this card")
	}

	// Engine control goes off-loop; the resulting property change comes
	// back through the session's event channel.
	return func() tea.Msg {
		if err := s.TogglePause(); err != nil {
			return ui.Notify("Pause failed: " + err.Error())()
		}
		return nil
	}
}

// openSelectedURL opens the highlighted video's public page in the system browser.
func (b *statefulBubble) openSelectedURL() tea.Cmd {
	var target string

	switch b.state {
	case feedState:
		if item, ok := b.feedC.SelectedItem().(*listItem); ok {
			if card, ok := item.internal.(*feed.Card); ok {
				target = card.Record.WatchURL()
			}
		}
	case historyState:
		if item, ok := b.historyC.SelectedItem().(*listItem); ok {
			if video, ok := item.internal.(*history.SavedVideo); ok {
				target = video.URL
			}
		}
	}

	if target == "" {
		return nil
	}

	if err := open.Start(target); err != nil {
		return ui.Notify("Open failed: " + err.Error())
	}
	return ui.Notify("Opened " + target)
}

// loadHistory populates the history list from the persistent store.
func (b *statefulBubble) loadHistory() (int, error) {
	saved, err := history.Get()
	if err != nil {
		return 0, fmt.Errorf("load history: %w", err)
	}

	items := lo.Map(lo.Values(saved), func(video *history.SavedVideo, _ int) list.Item {
		return &listItem{internal: video}
	})
	b.historyC.SetItems(items)

	return len(items), nil
}

// removeSelectedHistoryEntry deletes the highlighted record from the history store.
func (b *statefulBubble) removeSelectedHistoryEntry() tea.Cmd {
	item, ok := b.historyC.SelectedItem().(*listItem)
	if !ok {
		return nil
	}

	video, ok := item.internal.(*history.SavedVideo)
	if !ok {
		return nil
	}

	if err := history.Remove(video); err != nil {
		return ui.Notify("Remove failed: " + err.Error())
	}

	if _, err := b.loadHistory(); err != nil {
		b.raiseError(err)
	}
	return nil
}
