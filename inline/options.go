// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/util"
)

// VideosFilter narrows the fetched catalog to the subset to output or play.
type VideosFilter func([]feed.Record) ([]feed.Record, error)

type Options struct {
	Out io.Writer

	// Json emits the selected records as structured output instead of playing them.
	Json bool

	// Play drives the selected records through sequential playback.
	Play bool

	VideosFilter mo.Option[VideosFilter]
}

// ParseVideosFilter parses a selector description.
// Format: "first", "last", "all", "1-5", "3", "@fuzzy text@"
func ParseVideosFilter(description string) (VideosFilter, error) {
	switch description {
	case "", "all":
		return func(records []feed.Record) ([]feed.Record, error) {
			return records, nil
		}, nil
	case "first":
		return func(records []feed.Record) ([]feed.Record, error) {
			if len(records) == 0 {
				return records, nil
			}
			return records[:1], nil
		}, nil
	case "last":
		return func(records []feed.Record) ([]feed.Record, error) {
			if len(records) == 0 {
				return records, nil
			}
			return records[len(records)-1:], nil
		}, nil
	}

	// Fuzzy: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		pattern := description[1 : len(description)-1]
		return func(records []feed.Record) ([]feed.Record, error) {
			return lo.Filter(records, func(r feed.Record, _ int) bool {
				return fuzzy.MatchNormalizedFold(pattern, r.Title)
			}), nil
		}, nil
	}

	// Range: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(records []feed.Record) ([]feed.Record, error) {
					start := util.Min(int(from), len(records))
					end := util.Min(int(to)+1, len(records))
					if start > end {
						return []feed.Record{}, nil
					}
					return records[start:end], nil
				}, nil
			}
		}
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(records []feed.Record) ([]feed.Record, error) {
			if uint64(len(records)) <= idx {
				return []feed.Record{}, nil
			}
			return records[idx : idx+1], nil
		}, nil
	}

	return nil, fmt.Errorf("invalid videos filter: %s", description)
}
