package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/history"
	"github.com/vidfeed-cli/vidfeed/icon"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/style"
)

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal interface{}

	// index is the card's feed position; meaningless for other payloads.
	index  int
	bubble *statefulBubble
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *feed.Card:
		title = e.Record.Title
		if t.bubble != nil && t.bubble.controller.CurrentIndex() == t.index {
			title = fmt.Sprintf("%s %s", title, icon.Get(icon.Play))
		}
	case *history.SavedVideo:
		title = e.Title
	case string:
		title = e
	default:
		title = t.FilterValue()
	}
	return
}

// Description retrieves the multi-line secondary metadata for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *feed.Card:
		var parts []string

		parts = append(parts, "video: "+statusStyle(e.VideoStatus))

		adLabel := "ad: " + statusStyle(e.AdStatus)
		if e.AdStatus != feed.StatusUnset {
			adLabel = icon.Get(icon.Ad) + " " + adLabel
		}
		parts = append(parts, adLabel)

		description = strings.Join(parts, " • ")
		if viper.GetBool(key.TUIShowURLs) {
			description += "\n" + style.Faint(e.Record.WatchURL())
		}
	case *history.SavedVideo:
		completionThreshold := viper.GetFloat64(key.PlayerCompletionPercentage)
		if completionThreshold <= 0 {
			completionThreshold = 80.0
		}

		progress := ""
		if e.WatchedPercentage > 0 && e.WatchedPercentage < completionThreshold {
			progress = lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf(" (%.0f%%)", e.WatchedPercentage))
		} else if e.WatchedPercentage >= completionThreshold {
			progress = lipgloss.NewStyle().Foreground(style.Green).Render(" (Watched)")
		}
		description = style.Faint(e.URL) + progress
	case string:
		description = ""
	}
	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *feed.Card:
		return e.Record.Title
	case *history.SavedVideo:
		return e.Title
	case string:
		return e
	default:
		return ""
	}
}

// statusStyle highlights the notable status labels of the lifecycle.
func statusStyle(status string) string {
	switch status {
	case "end":
		return lipgloss.NewStyle().Foreground(style.Green).Render(status)
	case "buffering":
		return lipgloss.NewStyle().Foreground(style.Yellow).Render(icon.Get(icon.Buffer) + " " + status)
	case "pause":
		return icon.Get(icon.Pause) + " " + status
	default:
		return status
	}
}
