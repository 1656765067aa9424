package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/deeplink"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/share"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.Flags().StringP("episode", "e", "", "Episode id to share, the item itself when omitted")
	shareCmd.Flags().BoolP("print", "p", false, "Only print the link without handing it to a share facility")
	shareCmd.Flags().BoolP("json", "j", false, "Print the share request as JSON")

	shareCmd.SetOut(os.Stdout)
}

// shareCmd hands the link of a catalog entry to the platform share facility.
var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Share the link of a catalog entry",
	Long: `Produce the link of a catalog entry and hand it to the first share facility available.
Native sharing is tried first, then the clipboard. When neither works the link is printed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		item, err := c.Item(args[0])
		handleErr(err)

		episodeID := lo.Must(cmd.Flags().GetString("episode"))
		if episodeID != "" {
			_, err := c.Episode(item.ID, episodeID)
			handleErr(err)
		}

		link := deeplink.ShareURL(viper.GetString(key.ShareBaseURL), item.ID, episodeID)
		request := share.NewRequest(item.Title, viper.GetString(key.SiteName), link)

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(request))
			return
		case lo.Must(cmd.Flags().GetBool("print")):
			cmd.Println(link)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		switch method := share.NewChain(cmd.OutOrStdout()).Share(ctx, request); method {
		case share.MethodNative:
			cmd.Printf("%s Shared %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(item.Title))
		case share.MethodClipboard:
			cmd.Printf("%s Link copied to clipboard\n", style.Fg(color.Green)(icon.Get(icon.Success)))
		case share.MethodManual:
			// the manual step printed the link
		default:
			handleErr(fmt.Errorf("could not share %s", link))
		}
	},
}
