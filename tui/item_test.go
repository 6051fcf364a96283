package tui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/icon"
	"github.com/vidfeed-cli/vidfeed/key"
)

func init() {
	viper.Set(key.IconsVariant, "plain")
	viper.Set(key.TUIShowURLs, false)
}

func someCard() *feed.Card {
	return &feed.Card{
		Record:      feed.Record{ID: "x1", Title: "A video", Thumbnail: "https://e/1.jpg"},
		VideoStatus: feed.StatusUnset,
		AdStatus:    feed.StatusUnset,
	}
}

func TestListItemDescription(t *testing.T) {
	Convey("Card description", t, func() {
		card := someCard()
		item := &listItem{internal: card}

		Convey("shows both status channels", func() {
			So(item.Description(), ShouldContainSubstring, "video: --")
			So(item.Description(), ShouldContainSubstring, "ad: --")
		})

		Convey("a paused video carries the pause glyph", func() {
			card.VideoStatus = "pause"
			So(item.Description(), ShouldContainSubstring, icon.Get(icon.Pause))
		})

		Convey("a buffering video carries the buffer glyph", func() {
			card.VideoStatus = "buffering"
			So(item.Description(), ShouldContainSubstring, icon.Get(icon.Buffer))
		})

		Convey("an active ad channel is marked with the ad glyph", func() {
			card.AdStatus = "start"
			So(item.Description(), ShouldContainSubstring, icon.Get(icon.Ad))
		})

		Convey("an unset ad channel stays unmarked", func() {
			So(item.Description(), ShouldNotContainSubstring, icon.Get(icon.Ad))
		})
	})
}
