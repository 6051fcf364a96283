// Package cmd implements the command-line interface for vidfeed.
package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/filesystem"
	"github.com/vidfeed-cli/vidfeed/inline"
	"github.com/vidfeed-cli/vidfeed/key"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("videos", "e", "", "Criteria for selecting specific videos from the fetched catalog")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("play", "P", false, "Drive the selected videos through sequential playback")
	inlineCmd.Flags().Bool("autoplay", true, "Advance to the next video when the current one ends")
	lo.Must0(viper.BindPFlag(key.FeedAutoplay, inlineCmd.Flags().Lookup("autoplay")))

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.MarkFlagsMutuallyExclusive("json", "play")
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Video selectors:
  first - first video in the list
  last - last video in the list
  all - all videos in the list
  [number] - select video by index (starting from 0)
  [from]-[to] - select videos by range
  @[text]@ - select videos by fuzzy title match

Without flags the selected watch URLs are printed one per line.`,

	Example: "vidfeed inline --videos @news@ --json",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("play")) {
			CheckDependencies()
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			writer = file
		} else {
			writer = os.Stdout
		}

		videosFlag := lo.Must(cmd.Flags().GetString("videos"))
		videosFilter := mo.None[inline.VideosFilter]()
		if videosFlag != "" {
			fn, err := inline.ParseVideosFilter(videosFlag)
			handleErr(err)
			videosFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:          writer,
			Json:         lo.Must(cmd.Flags().GetBool("json")),
			Play:         lo.Must(cmd.Flags().GetBool("play")),
			VideosFilter: videosFilter,
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "video", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
