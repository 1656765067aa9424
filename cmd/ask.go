package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/insight"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolP("json", "j", false, "Print the conversation as JSON")

	askCmd.SetOut(os.Stdout)
}

// askCmd asks the title assistant a single question about a catalog entry.
var askCmd = &cobra.Command{
	Use:               "ask <id> <question>...",
	Short:             "Ask the AI assistant about a catalog entry",
	Long:              fmt.Sprintf("Ask the AI assistant about a catalog entry.\nRequires %s to be set.", key.InsightsAPIKey),
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionContentIDs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		item, err := c.Item(args[0])
		handleErr(err)

		assistant := newAssistant(cmd.Context())
		if assistant == nil {
			handleErr(errors.New(insight.MissingKeyReply))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		conversation := insight.NewConversation(assistant, item, viper.GetString(key.SiteName))
		reply, err := conversation.Ask(ctx, strings.Join(args[1:], " "))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(conversation.Messages()[1:]))
			return
		}

		cmd.Println(reply.Text)
	},
}
