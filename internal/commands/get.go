package commands

import (
	"github.com/spf13/cobra"

	"github.com/octorail/octorail-cli/internal/output"
)

var getCmd = &cobra.Command{
	Use:   "get <provider> <api>",
	Short: "Show API details and input schema",
	Long: `Fetch one API's detail record: price, category, upstream method, and the
input schema describing the call body it expects.

Example:
  octorail get acme weather`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	a := newApp()
	id, err := a.identity()
	if err != nil {
		return err
	}

	api, err := a.marketplace(id).GetAPI(args[0], args[1])
	if err != nil {
		return err
	}

	if GetJSONOutput() {
		return output.PrintJSON(api)
	}

	output.PrintAPIDetail(api)
	return nil
}
