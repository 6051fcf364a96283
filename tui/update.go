package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidfeed-cli/vidfeed/session"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process Ephemeral UI Notifications (captures `string` and `ui.ClearNotificationMsg`)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.loading = false
		b.raiseError(msg)
		return b, tea.Batch(cmd, b.waitForError())

	case recordsLoadedMsg:
		b.loading = false
		// Load activates index 0, so the first session spawns here.
		b.controller.Load(msg)
		b.setState(feedState)
		return b, tea.Batch(cmd, b.syncFeedItems(), b.waitForRecords())

	case sessionEventMsg:
		// The only place controller state is mutated by session activity.
		b.controller.OnSessionEvent(msg.index, msg.event)
		return b, tea.Batch(cmd, b.waitForSessionEvent())

	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			b.closeSessions()
			return b, tea.Quit
		}

		if b.loading {
			return b, cmd
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.state == feedState && b.feedC.FilterState() != list.Unfiltered {
				b.feedC, cmd = b.feedC.Update(msg)
				return b, cmd
			}
			b.previousState()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case feedState:
		return b.updateFeed(msg, cmd)
	case historyState:
		return b.updateHistory(msg, cmd)
	case errorState:
		return b.updateError(msg, cmd)
	}

	return b, cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateFeed(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.quit):
			b.closeSessions()
			return b, tea.Quit

		case bubblesKey.Matches(keyMsg, b.keymap.play):
			return b, tea.Batch(cmd, b.activateSelected())

		case bubblesKey.Matches(keyMsg, b.keymap.playPause):
			return b, tea.Batch(cmd, b.togglePauseCurrent())

		case bubblesKey.Matches(keyMsg, b.keymap.openURL):
			return b, tea.Batch(cmd, b.openSelectedURL())

		case bubblesKey.Matches(keyMsg, b.keymap.history):
			if _, err := b.loadHistory(); err != nil {
				b.raiseError(err)
				return b, cmd
			}
			b.newState(historyState)
			return b, cmd

		case bubblesKey.Matches(keyMsg, b.keymap.refresh):
			// A refresh tears down the running sessions before refetching.
			b.closeSessions()
			b.sessions = make(map[int]*session.Session)
			b.loading = true
			b.setState(loadingState)
			return b, tea.Batch(cmd, b.loadFeed())
		}
	}

	var listCmd tea.Cmd
	b.feedC, listCmd = b.feedC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateHistory(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.quit):
			b.closeSessions()
			return b, tea.Quit

		case bubblesKey.Matches(keyMsg, b.keymap.remove):
			return b, tea.Batch(cmd, b.removeSelectedHistoryEntry())

		case bubblesKey.Matches(keyMsg, b.keymap.openURL):
			return b, tea.Batch(cmd, b.openSelectedURL())
		}
	}

	var listCmd tea.Cmd
	b.historyC, listCmd = b.historyC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateError(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if bubblesKey.Matches(keyMsg, b.keymap.quit) {
			b.closeSessions()
			return b, tea.Quit
		}
	}
	return b, cmd
}
