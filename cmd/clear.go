package cmd

import (
	"fmt"

	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/util"
	"github.com/seriesgenius/seriesgenius/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is a file or directory the clear command can remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

// clearTargets are ordered so files inside the cache go before the cache itself.
var clearTargets = []clearTarget{
	{"last link", "location", mo.Some("l"), where.Location},
	{"queries history", "queries", mo.Some("q"), where.Queries},
	{"cache directory", "cache", mo.Some("c"), where.Cache},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes persisted state.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the last link, the search history or the whole cache",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		doClear := func(what string) bool {
			return lo.Must(cmd.Flags().GetBool(what))
		}

		for _, target := range clearTargets {
			if doClear(target.argLong) {
				anyCleared = true
				e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
				err := util.Delete(target.location())
				e()
				if err != nil {
					handleErr(filesystem.API().RemoveAll(target.location()))
				}
				fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
			}
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
