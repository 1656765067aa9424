package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/classify"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/strategy"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/spf13/cobra"
)

type classification struct {
	Input string `json:"input"`
	classify.Report
	Strategy strategy.Kind `json:"strategy"`
	Degraded bool          `json:"degraded,omitempty"`
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	classifyCmd.SetOut(os.Stdout)
}

// classifyCmd shows how video urls would be delivered.
var classifyCmd = &cobra.Command{
	Use:     "classify <url>...",
	Short:   "Show the delivery tag, playable url and strategy of video urls",
	Args:    cobra.MinimumNArgs(1),
	Example: "  seriesgenius classify https://youtu.be/dQw4w9WgXcQ https://example.com/live.m3u8",
	Run: func(cmd *cobra.Command, args []string) {
		results := lo.Map(args, func(raw string, _ int) classification {
			report := classify.Inspect(raw)
			return classification{
				Input:    raw,
				Report:   report,
				Strategy: strategy.Select(report.Tag),
				Degraded: report.Degraded(),
			}
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(results))
			return
		}

		for i, result := range results {
			cmd.Println(style.Fg(color.Purple)(result.Input))
			cmd.Printf("  %s %s\n", style.Faint("tag"), style.Bold(result.Tag.String()))
			cmd.Printf("  %s %s\n", style.Faint("strategy"), style.Bold(result.Strategy.String()))
			cmd.Printf("  %s %s\n", style.Faint("url"), result.URL)

			if result.Degraded {
				cmd.Println(style.Fg(color.Yellow)(fmt.Sprintf(
					"  %s looks like %s but has no usable video id, it will be played as %s",
					icon.Get(icon.Warn), result.Provider, result.Tag,
				)))
			}

			if i < len(results)-1 {
				cmd.Println()
			}
		}
	},
}
