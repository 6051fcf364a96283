package cache_test

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/filesystem"
	"github.com/vidfeed-cli/vidfeed/internal/cache"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/where"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.FeedCacheLifetime, 15)
}

func TestGenerateKey(t *testing.T) {
	Convey("GenerateKey", t, func() {
		Convey("is deterministic", func() {
			So(cache.GenerateKey("https://e/videos", 10), ShouldEqual, cache.GenerateKey("https://e/videos", 10))
		})

		Convey("distinguishes endpoint and limit", func() {
			base := cache.GenerateKey("https://e/videos", 10)
			So(cache.GenerateKey("https://e/other", 10), ShouldNotEqual, base)
			So(cache.GenerateKey("https://e/videos", 20), ShouldNotEqual, base)
		})
	})
}

func TestReadWrite(t *testing.T) {
	Convey("Read and Write", t, func() {
		records := []feed.Record{{ID: "x1", Title: "A video", Thumbnail: "https://e/1.jpg"}}
		cacheKey := cache.GenerateKey("https://e/roundtrip", 5)

		Convey("round-trips a written catalog", func() {
			So(cache.Write(cacheKey, records), ShouldBeNil)

			var cached []feed.Record
			So(cache.Read(cacheKey, &cached), ShouldBeTrue)
			So(cached, ShouldHaveLength, 1)
			So(cached[0].ID, ShouldEqual, "x1")
		})

		Convey("misses on an unknown key", func() {
			var cached []feed.Record
			So(cache.Read(cache.GenerateKey("https://e/absent", 5), &cached), ShouldBeFalse)
		})
	})
}

func TestCollectGarbage(t *testing.T) {
	Convey("CollectGarbage", t, func() {
		staleKey := cache.GenerateKey("https://e/stale", 1)
		freshKey := cache.GenerateKey("https://e/fresh", 1)

		So(cache.Write(staleKey, []feed.Record{}), ShouldBeNil)
		So(cache.Write(freshKey, []feed.Record{}), ShouldBeNil)

		stalePath := filepath.Join(where.FeedCache(), staleKey)
		old := time.Now().Add(-2 * time.Hour)
		So(filesystem.API().Chtimes(stalePath, old, old), ShouldBeNil)

		cache.CollectGarbage()

		staleExists, err := filesystem.API().Exists(stalePath)
		So(err, ShouldBeNil)
		So(staleExists, ShouldBeFalse)

		freshExists, err := filesystem.API().Exists(filepath.Join(where.FeedCache(), freshKey))
		So(err, ShouldBeNil)
		So(freshExists, ShouldBeTrue)
	})
}
