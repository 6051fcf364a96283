package session

import "strings"

// ErrorKind is the closed set of runtime failure classifications.
// Every player-reported error folds into exactly one kind; none are
// retried or escalated beyond the originating card.
type ErrorKind int

const (
	ErrUnexpected ErrorKind = iota
	ErrAdsModuleMissing
	ErrStateUnavailable
	ErrRemote
	ErrTimeout
	ErrNoInternet
	ErrPlayerIDNotFound
	ErrRequest
)

// String returns the diagnostic name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrAdsModuleMissing:
		return "ads module missing"
	case ErrStateUnavailable:
		return "state unavailable"
	case ErrRemote:
		return "remote error"
	case ErrTimeout:
		return "request timed out"
	case ErrNoInternet:
		return "no internet"
	case ErrPlayerIDNotFound:
		return "player id not found"
	case ErrRequest:
		return "request error"
	default:
		return "unexpected"
	}
}

// Classify folds an arbitrary runtime error into the closed kind set.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrUnexpected
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "ads") || strings.Contains(msg, "advert"):
		return ErrAdsModuleMissing
	case strings.Contains(msg, "property unavailable") || strings.Contains(msg, "state unavailable"):
		return ErrStateUnavailable
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return ErrTimeout
	case strings.Contains(msg, "no such host") || strings.Contains(msg, "network is unreachable") || strings.Contains(msg, "no internet"):
		return ErrNoInternet
	case strings.Contains(msg, "unknown profile") || strings.Contains(msg, "unknown player"):
		return ErrPlayerIDNotFound
	case strings.Contains(msg, "mpv error"):
		return ErrRemote
	case strings.Contains(msg, "request"):
		return ErrRequest
	default:
		return ErrUnexpected
	}
}
