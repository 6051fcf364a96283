// Package history provides the implementation for tracking and persisting user media consumption state.
package history

import (
	"github.com/metafates/gache"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/filesystem"
	"github.com/vidfeed-cli/vidfeed/where"
)

// cacher provides an abstracted, disk-backed registry for playback progress records.
var cacher = gache.New[map[string]*SavedVideo](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of historical playback records from the persistent store.
func Get() (map[string]*SavedVideo, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedVideo), nil
	}
	return cached, nil
}

// Save persists the playback progress of a specific video to the history registry.
func Save(record feed.Record, percentage float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	entry := newSavedVideo(record)

	// Idempotency: Maintain the maximum observed playback percentage to prevent regressions on re-watch.
	if existing, exists := saved[entry.encode()]; exists {
		if percentage < existing.WatchedPercentage {
			percentage = existing.WatchedPercentage
		}
	}
	entry.WatchedPercentage = percentage

	saved[entry.encode()] = entry

	return cacher.Set(saved)
}

// Remove permanently deletes a specific playback record from the history registry.
func Remove(video *SavedVideo) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, video.encode())
	return cacher.Set(saved)
}
