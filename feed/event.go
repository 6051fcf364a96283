// Package feed implements the sequential multi-video playback controller:
// an ordered catalog of video records, the active index, and the event-driven
// autoplay logic that advances playback when a video ends.
package feed

// StatusUnset is the initial value of both per-card status channels.
const StatusUnset = "--"

// Kind enumerates every lifecycle notification a playback session can emit.
// Video and ad notifications form two disjoint channels mapped onto two
// separate status lines.
type Kind int

const (
	KindUnknown Kind = iota

	// Video lifecycle
	KindStarted
	KindPlaying
	KindPaused
	KindBuffering
	KindSeeking
	KindEnded

	// Ad lifecycle
	KindAdStarted
	KindAdPaused
	KindAdPlaying
	KindAdEnded
	KindAdLoaded
	KindAdClicked

	// Terminal-and-local runtime failure
	KindError
)

// Event is the tagged union delivered to the controller's single entry point.
// Detail carries the error description for KindError and is empty otherwise.
type Event struct {
	Kind   Kind
	Detail string
}

var videoStatusText = map[Kind]string{
	KindStarted:   "start play",
	KindPlaying:   "playing",
	KindPaused:    "pause",
	KindBuffering: "buffering",
	KindSeeking:   "seeking",
	KindEnded:     "end",
}

var adStatusText = map[Kind]string{
	KindAdStarted: "start",
	KindAdPaused:  "pause",
	KindAdPlaying: "play",
	KindAdEnded:   "end",
	KindAdLoaded:  "loaded",
	KindAdClicked: "clicked",
}

// VideoStatusText maps a video lifecycle kind to its status label.
// Reports false for kinds outside the video channel so the prior label is preserved.
func VideoStatusText(k Kind) (string, bool) {
	s, ok := videoStatusText[k]
	return s, ok
}

// AdStatusText maps an ad lifecycle kind to its status label.
// Reports false for kinds outside the ad channel so the prior label is preserved.
func AdStatusText(k Kind) (string, bool) {
	s, ok := adStatusText[k]
	return s, ok
}

// String returns a diagnostic name for the event kind.
func (k Kind) String() string {
	switch k {
	case KindStarted:
		return "started"
	case KindPlaying:
		return "playing"
	case KindPaused:
		return "paused"
	case KindBuffering:
		return "buffering"
	case KindSeeking:
		return "seeking"
	case KindEnded:
		return "ended"
	case KindAdStarted:
		return "adStarted"
	case KindAdPaused:
		return "adPaused"
	case KindAdPlaying:
		return "adPlaying"
	case KindAdEnded:
		return "adEnded"
	case KindAdLoaded:
		return "adLoaded"
	case KindAdClicked:
		return "adClicked"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}
