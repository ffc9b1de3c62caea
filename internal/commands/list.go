package commands

import (
	"github.com/spf13/cobra"

	"github.com/octorail/octorail-cli/internal/client"
	"github.com/octorail/octorail-cli/internal/output"
)

var (
	listSearch   string
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse the API catalog",
	Long: `List APIs available on the marketplace, optionally filtered.

Examples:
  octorail list
  octorail list --search weather
  octorail list --category data --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Free-text search filter")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Category filter")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a := newApp()
	id, err := a.identity()
	if err != nil {
		return err
	}

	catalog, err := a.marketplace(id).ListAPIs(client.ListOptions{
		Search:   listSearch,
		Category: listCategory,
	})
	if err != nil {
		return err
	}

	if GetJSONOutput() {
		return output.PrintJSON(catalog)
	}

	output.PrintCatalog(catalog)
	return nil
}
