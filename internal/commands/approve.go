package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultMaxPrice is the per-call ceiling applied when --max-price is not
// given.
const defaultMaxPrice = "0.01"

var approveMaxPrice string

var approveCmd = &cobra.Command{
	Use:   "approve <provider> <api>",
	Short: "Allow an API to be called, with a per-call price ceiling",
	Long: `Add an API to the local allowlist. Only approved APIs can be called, and
the approved max price is the ceiling the payment transport will accept for
one call. Re-approving an API replaces its ceiling and refreshes the
approval timestamp.

Examples:
  octorail approve acme weather
  octorail approve acme weather --max-price 0.05`,
	Args: cobra.ExactArgs(2),
	RunE: runApprove,
}

func init() {
	approveCmd.Flags().StringVar(&approveMaxPrice, "max-price", defaultMaxPrice, "Maximum price per call (USDC)")

	rootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	provider, api := args[0], args[1]

	a := newApp()
	if err := a.gate.Approve(provider, api, approveMaxPrice); err != nil {
		return err
	}

	fmt.Printf("Approved %s/%s (max %s USDC per call).\n", provider, api, approveMaxPrice)
	return nil
}
