package feed

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/vidfeed-cli/vidfeed/constant"
)

// Record is a parsed, validated description of one playable video.
// Immutable after construction; insertion order equals display order.
type Record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail_240_url"`
}

// WatchURL resolves the public page of the video.
func (r Record) WatchURL() string {
	return fmt.Sprintf(constant.WatchURLFormat, r.ID)
}

// listResponse mirrors the catalog endpoint's envelope.
type listResponse struct {
	List []Record `json:"list"`
}

// ParseList decodes a catalog response and filters out malformed elements.
// An element missing any of id, title or thumbnail yields no record; the
// remaining records keep their source order. An undecodable payload is an error.
func ParseList(data []byte) ([]Record, error) {
	var response listResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("decode video list: %w", err)
	}

	return lo.Filter(response.List, func(r Record, _ int) bool {
		return r.ID != "" && r.Title != "" && r.Thumbnail != ""
	}), nil
}
