package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/seriesgenius/seriesgenius/util"
	"github.com/seriesgenius/seriesgenius/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogCmd is the parent of the catalog maintenance commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate the content catalog",
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogListCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	catalogListCmd.Flags().BoolP("rows", "r", false, "Group the items into browsing rows")

	catalogListCmd.SetOut(os.Stdout)
}

// catalogListCmd prints every item of the catalog.
var catalogListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the items of the catalog",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(c.Items()))
			return
		}

		if lo.Must(cmd.Flags().GetBool("rows")) {
			for i, row := range c.Rows() {
				cmd.Println(style.Title(row.Title))
				for _, item := range row.Items {
					cmd.Println("  " + describeItem(item))
				}

				if i < len(c.Rows())-1 {
					cmd.Println()
				}
			}
			return
		}

		for _, item := range c.Items() {
			cmd.Println(describeItem(item))
		}
	},
}

func describeItem(item *catalog.Item) string {
	var b strings.Builder
	b.WriteString(style.Fg(color.Purple)(item.ID))
	b.WriteString(" ")
	b.WriteString(style.Bold(item.Title))

	if item.IsEpisodic() {
		b.WriteString(" ")
		b.WriteString(style.Faint(util.Quantify(len(item.Episodes), "episode", "episodes")))
	} else if item.Duration != "" {
		b.WriteString(" ")
		b.WriteString(style.Faint(item.Duration))
	}

	return b.String()
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogValidateCmd.Flags().BoolP("strict", "s", false, "Treat lint warnings as errors")

	catalogValidateCmd.SetOut(os.Stdout)
}

// catalogValidateCmd checks a catalog file without starting playback.
var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file for errors and urls that will not play as expected",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := viper.GetString(key.CatalogPath)
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = where.Catalog()
		}

		data, err := filesystem.API().ReadFile(path)
		handleErr(err)

		items, err := catalog.Decode(data)
		handleErr(err)

		c, err := catalog.New(items)
		handleErr(err)

		warnings := c.Lint()
		for _, warning := range warnings {
			cmd.Printf("%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), warning)
		}

		if len(warnings) > 0 && lo.Must(cmd.Flags().GetBool("strict")) {
			handleErr(fmt.Errorf("%s found", util.Quantify(len(warnings), "warning", "warnings")))
		}

		cmd.Printf(
			"%s %s is valid, %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			path,
			util.Quantify(c.Len(), "item", "items"),
		)
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
	catalogSchemaCmd.Flags().BoolP("warnings", "w", false, "Generate the JSON schema of lint warnings instead")
}

// catalogSchemaCmd generates the JSON schema catalog files are written against.
var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of catalog files",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := newReflector()

		var target any = []*catalog.Item{}
		if lo.Must(cmd.Flags().GetBool("warnings")) {
			target = []catalog.Warning{}
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(target)))
	},
}
