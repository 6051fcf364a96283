package history

import (
	"fmt"

	"github.com/vidfeed-cli/vidfeed/feed"
)

// SavedVideo represents a single playback entry preserved in the user's history.
type SavedVideo struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Thumbnail         string  `json:"thumbnail"`
	URL               string  `json:"url"`
	WatchedPercentage float64 `json:"watched_percentage"`
}

func (s *SavedVideo) encode() string {
	return s.ID
}

func (s *SavedVideo) String() string {
	return fmt.Sprintf("%s : %d%%", s.Title, int(s.WatchedPercentage))
}

func newSavedVideo(record feed.Record) *SavedVideo {
	return &SavedVideo{
		ID:        record.ID,
		Title:     record.Title,
		Thumbnail: record.Thumbnail,
		URL:       record.WatchURL(),
	}
}
