package commands

import (
	"github.com/spf13/cobra"

	"github.com/octorail/octorail-cli/internal/ledger"
	"github.com/octorail/octorail-cli/internal/output"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Spending history",
	Long: `Show total and per-API spend, and the most recent calls.

Examples:
  octorail history
  octorail history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", ledger.DefaultLimit, "Number of recent calls to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a := newApp()

	recent, err := a.ledger.Recent(historyLimit)
	if err != nil {
		return err
	}
	summary, err := a.ledger.Summarize()
	if err != nil {
		return err
	}

	if GetJSONOutput() {
		return output.PrintJSON(map[string]interface{}{
			"summary": summary,
			"recent":  recent,
		})
	}

	output.PrintHistory(summary, recent)
	return nil
}
