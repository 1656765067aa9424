package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/inline"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("query", "q", "", "Narrow the catalog by a search query")
	resolveCmd.Flags().StringP("item", "i", "", "Criteria for selecting an item from the results")
	resolveCmd.Flags().StringP("episode", "e", "", "Criteria for selecting an episode of the chosen item")
	resolveCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	resolveCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	_ = resolveCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete, 10), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveCmd resolves catalog entries to playback targets without the TUI.
var resolveCmd = &cobra.Command{
	Use:     "resolve",
	Aliases: []string{"inline"},
	Short:   "Resolve catalog entries to playback targets in scriptable inline mode",
	Long: `Resolve catalog entries to the url, tag and strategy they would be played with.

Item selectors:
  first - first item in the list
  last - last item in the list
  [number] - select item by index (starting from 0)
  id:[id] - select item by content id
  [title] - select item by its exact title

Episode selectors:
  first - first episode of the item
  last - last episode of the item
  [number] - select episode by index (starting from 0)
  id:[id] - select episode by id

Without an item selector every matching item is resolved.`,
	Example: "  seriesgenius resolve -q mountain -i first -e last --json",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		q := lo.Must(cmd.Flags().GetString("query"))
		if q != "" {
			_ = query.Remember(q, 1)
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		} else {
			writer = os.Stdout
		}

		itemPicker := mo.None[inline.ItemPicker]()
		if flag := lo.Must(cmd.Flags().GetString("item")); flag != "" {
			fn, err := inline.ParseItemPicker(selector(flag, "exact"))
			handleErr(err)
			itemPicker = mo.Some(fn)
		}

		episodePicker := mo.None[inline.EpisodePicker]()
		if flag := lo.Must(cmd.Flags().GetString("episode")); flag != "" {
			fn, err := inline.ParseEpisodePicker(selector(flag, "id"))
			handleErr(err)
			episodePicker = mo.Some(fn)
		}

		handleErr(inline.Run(&inline.Options{
			Out:           writer,
			Catalog:       c,
			Json:          lo.Must(cmd.Flags().GetBool("json")),
			Query:         q,
			ItemPicker:    itemPicker,
			EpisodePicker: episodePicker,
			ShareBase:     viper.GetString(key.ShareBaseURL),
		}))
	},
}

// selector splits a selector flag into a picker kind and its value.
// Anything that is not a keyword, an index or a prefixed id is of kind fallback.
func selector(flag, fallback string) (kind, value string) {
	switch flag {
	case "first", "last":
		return flag, ""
	}

	if _, err := strconv.ParseUint(flag, 10, 16); err == nil {
		return "index", flag
	}

	if id, ok := strings.CutPrefix(flag, "id:"); ok {
		return "id", id
	}

	return fallback, flag
}

func init() {
	resolveCmd.AddCommand(resolveSchemaCmd)
}

// resolveSchemaCmd generates the JSON schema of the resolve output.
var resolveSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the structured resolve output",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(newReflector().Reflect(&inline.Output{})))
	},
}

func newReflector() *jsonschema.Reflector {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "item", "episode", "output", "result", "warning":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector
}
