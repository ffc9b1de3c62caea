package commands

import (
	"github.com/spf13/cobra"

	"github.com/octorail/octorail-cli/internal/output"
)

var approvedCmd = &cobra.Command{
	Use:   "approved",
	Short: "List approved APIs",
	Long:  `Show every API in the local allowlist with its price ceiling.`,
	Args:  cobra.NoArgs,
	RunE:  runApproved,
}

func init() {
	rootCmd.AddCommand(approvedCmd)
}

func runApproved(cmd *cobra.Command, args []string) error {
	a := newApp()
	entries, err := a.gate.List()
	if err != nil {
		return err
	}

	if GetJSONOutput() {
		return output.PrintJSON(entries)
	}

	output.PrintApproved(entries)
	return nil
}
