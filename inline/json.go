// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/vidfeed-cli/vidfeed/feed"
)

// Video is one catalog entry in the structured output.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
}

// Output is the top-level structured output envelope.
type Output struct {
	Endpoint string   `json:"endpoint"`
	Result   []*Video `json:"result"`
}

func asJson(records []feed.Record, endpoint string) ([]byte, error) {
	result := make([]*Video, len(records))
	for i, r := range records {
		result[i] = &Video{
			ID:        r.ID,
			Title:     r.Title,
			Thumbnail: r.Thumbnail,
			URL:       r.WatchURL(),
		}
	}

	return json.Marshal(&Output{
		Endpoint: endpoint,
		Result:   result,
	})
}
