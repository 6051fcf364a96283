// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// History opens the watch history instead of fetching the feed.
	History bool
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)

	if options.History {
		if _, err := bubble.loadHistory(); err != nil {
			return err
		}
		bubble.setState(historyState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()

	// Sessions hold external player processes; never leave them orphaned.
	bubble.closeSessions()

	return err
}
