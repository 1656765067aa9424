package cmd

import (
	"os"
	"strings"

	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/config"
	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/seriesgenius/seriesgenius/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envCmd lists the environment variables that override config keys.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display every environment variable that overrides a config key, and its current value.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names := append(slices.Clone(config.EnvExposed), where.EnvConfigPath)
		slices.Sort(names)
		for _, env := range names {
			if env != where.EnvConfigPath {
				env = strings.ToUpper(constant.App + "_" + config.EnvKeyReplacer.Replace(env))
			}
			value := os.Getenv(env)
			present := value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
