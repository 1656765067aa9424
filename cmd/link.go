package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/deeplink"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().BoolP("json", "j", false, "Format the selection as JSON")
	linkCmd.Flags().BoolP("open", "o", false, "Store the selection so the next TUI start opens it")

	linkCmd.SetOut(os.Stdout)
}

// linkCmd decodes a share link against the catalog.
var linkCmd = &cobra.Command{
	Use:   "link <url>",
	Short: "Show what a share link selects in the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		values, err := deeplink.ParseLink(args[0])
		handleErr(err)

		selection, ok := deeplink.Decode(values, c)
		if !ok {
			handleErr(deeplink.ErrNoSelection)
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(deeplink.NewFileLocation("").Write(deeplink.Encode(selection.ContentID, selection.EpisodeID)))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(selection))
			return
		}

		item := lo.Must(c.Item(selection.ContentID))
		cmd.Printf("%s %s\n", style.Faint("content"), style.Bold(item.Title))
		if selection.EpisodeID != "" {
			episode := lo.Must(c.Episode(selection.ContentID, selection.EpisodeID))
			cmd.Printf("%s %s\n", style.Faint("episode"), style.Bold(episode.String()))
		}

		if selection.Plays() {
			cmd.Printf("%s plays on open\n", style.Fg(color.Green)(icon.Get(icon.Play)))
		} else {
			cmd.Printf("%s opens the preview\n", style.Fg(color.Yellow)(icon.Get(icon.Movie)))
		}

		cmd.Println(deeplink.ShareURL(viper.GetString(key.ShareBaseURL), selection.ContentID, selection.EpisodeID))
	},
}

func init() {
	linkCmd.AddCommand(linkPrintCmd)
}

// linkPrintCmd prints the address the last session left behind.
var linkPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the link of the last selection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		values, err := deeplink.NewFileLocation("").Read()
		handleErr(err)

		if len(values) == 0 {
			handleErr(deeplink.ErrNoSelection)
		}

		cmd.Println(deeplink.ShareURL(
			viper.GetString(key.ShareBaseURL),
			values.Get(deeplink.ParamContent),
			values.Get(deeplink.ParamEpisode),
		))
	},
}
