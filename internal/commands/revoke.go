package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var revokeCmd = &cobra.Command{
	Use:   "revoke <provider> <api>",
	Short: "Remove an API from the allowlist",
	Long: `Remove an API's authorization. The API can no longer be called until it
is approved again. Call history is kept.

Example:
  octorail revoke acme weather`,
	Args: cobra.ExactArgs(2),
	RunE: runRevoke,
}

func init() {
	rootCmd.AddCommand(revokeCmd)
}

func runRevoke(cmd *cobra.Command, args []string) error {
	provider, api := args[0], args[1]

	a := newApp()
	if err := a.gate.Revoke(provider, api); err != nil {
		return err
	}

	fmt.Printf("Revoked %s/%s. This API can no longer be called.\n", provider, api)
	return nil
}
