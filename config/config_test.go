package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/filesystem"
	"github.com/vidfeed-cli/vidfeed/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should register every defined key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("feed.manual_activation")
			So(result, ShouldEqual, "feed_manual_activation")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.FeedAutoplay]

		Convey("Env name carries the application prefix", func() {
			So(f.Env(), ShouldEqual, "VIDFEED_FEED_AUTOPLAY")
		})

		Convey("Pretty renders without panicking", func() {
			_ = Setup()
			So(f.Pretty(), ShouldContainSubstring, key.FeedAutoplay)
		})
	})
}
