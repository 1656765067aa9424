// Package cmd implements the command-line interface for seriesgenius.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/seriesgenius/seriesgenius/tui"
	"github.com/seriesgenius/seriesgenius/util"
	"github.com/seriesgenius/seriesgenius/version"
	"github.com/seriesgenius/seriesgenius/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("catalog", "C", "", "Path to the catalog file")
	lo.Must0(viper.BindPFlag(key.CatalogPath, rootCmd.PersistentFlags().Lookup("catalog")))

	rootCmd.Flags().StringP("link", "l", "", "Open the content selected by a share link")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the seriesgenius application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Browse a series catalog and play it from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse a series catalog and play it from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		app, err := newApp()
		handleErr(err)
		defer app.close()

		if link := lo.Must(cmd.Flags().GetString("link")); link != "" {
			handleErr(app.follow(link))
		}

		handleErr(tui.Run(&tui.Options{
			Engine:    app.engine,
			Codec:     app.codec,
			Sharer:    newShareChain(),
			ShareBase: viper.GetString(key.ShareBaseURL),
			SiteName:  viper.GetString(key.SiteName),
			Assistant: newAssistant(cmd.Context()),
		}))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
