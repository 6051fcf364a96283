// Package player defines a unified abstraction layer for external media playback engines.
// The architecture supports multiple backends, with the primary implementation targeting 'mpv' via its JSON-IPC interface.
package player

import (
	"fmt"
	"strings"
)

// OpenOptions carries everything needed to bind a player instance to one video.
type OpenOptions struct {
	// Target is the URL or path handed to the engine.
	Target string

	// VideoID identifies the bound video for diagnostics.
	VideoID string

	// Title is forced onto the player window.
	Title string

	// Mute starts the instance without audio.
	Mute bool

	// ExtraArgs are appended verbatim to the engine's command line.
	ExtraArgs []string
}

// Snapshot is a diagnostic view of the engine state, used only for logging.
type Snapshot struct {
	VideoID  string
	Title    string
	Duration float64
	Position float64
	Muted    bool
}

// Player encapsulates the required capabilities for a media playback backend.
type Player interface {
	// Open spawns the external engine bound to the given video and begins playback.
	// Exactly one engine instance may exist per Player for its lifetime.
	Open(opts OpenOptions) error

	// TogglePause inverts the current playback suspension state.
	TogglePause() error

	// WatchedPercentage calculates the relative playback completion percentage (0-100).
	WatchedPercentage() (float64, error)

	// Snapshot retrieves a diagnostic state snapshot from the running engine.
	Snapshot() (Snapshot, error)

	// IsRunning validates the liveness of the underlying playback process or handler.
	IsRunning() bool

	// Close terminates the playback engine and releases all associated system resources.
	Close() error

	// Socket retrieves the identifier for the Inter-Process Communication (IPC) channel.
	Socket() string

	// Wait returns a channel that is closed when the engine process terminates.
	Wait() <-chan struct{}
}

// AvailableNames lists every recognized playback backend identifier.
var AvailableNames = []string{"mpv", "iina"}

// ForName resolves a configured backend name to a fresh, dormant Player.
func ForName(name string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mpv":
		return NewMPV(), nil
	case "iina":
		return NewIINA(), nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", name)
	}
}
