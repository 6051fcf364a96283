package player

import (
	"fmt"
	"os/exec"
	"runtime"
)

// IINA implements the Player interface for macOS native IINA playback.
// IINA does not expose mpv's IPC socket, so the state-query surface
// degrades: liveness comes from the process handle and completion from
// process exit.
type IINA struct {
	cmd     *exec.Cmd
	videoID string
	exited  chan struct{}
}

func NewIINA() *IINA {
	return &IINA{
		exited: make(chan struct{}),
	}
}

func (m *IINA) Open(opts OpenOptions) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("IINA is only supported on macOS")
	}

	m.videoID = opts.VideoID

	// IINA accepts mpv-specific arguments via the '--args' flag separator.
	args := []string{"-a", "IINA", "--args", fmt.Sprintf("--mpv-force-media-title=%s", sanitizeTitle(opts.Title))}
	if opts.Mute {
		args = append(args, "--mpv-mute=yes")
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.Target)

	m.cmd = exec.Command("open", args...)

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	return nil
}

func (m *IINA) Wait() <-chan struct{} {
	return m.exited
}

func (m *IINA) TogglePause() error { return nil }

func (m *IINA) WatchedPercentage() (float64, error) {
	return 0, fmt.Errorf("not supported on IINA")
}

func (m *IINA) Snapshot() (Snapshot, error) {
	return Snapshot{VideoID: m.videoID}, fmt.Errorf("not supported on IINA")
}

func (m *IINA) IsRunning() bool {
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

func (m *IINA) Close() error {
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
	return nil
}

func (m *IINA) Socket() string { return "iina-native" }
