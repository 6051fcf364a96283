package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the terminal user interface, triggering the initial catalog fetch.
func (b *statefulBubble) Init() tea.Cmd {
	if b.state == historyState {
		return tea.Batch(b.spinnerC.Tick, b.waitForSessionEvent())
	}

	b.setState(loadingState)
	b.loading = true

	return tea.Batch(
		b.spinnerC.Tick,
		b.loadFeed(),
		b.waitForRecords(),
		b.waitForError(),
		b.waitForSessionEvent(),
	)
}
