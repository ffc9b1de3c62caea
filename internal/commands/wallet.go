package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octorail/octorail-cli/internal/output"
	"github.com/octorail/octorail-cli/internal/tokens"
)

// fundingNetwork is where marketplace payments settle.
const fundingNetwork = "base-sepolia"

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show the wallet address",
	Long: `Show the local wallet's address, provisioning the wallet on first use.

Paid APIs are settled in USDC from this address. Payments are gasless
EIP-3009 transfer authorizations, so the wallet only needs USDC, not ETH.`,
	Args: cobra.NoArgs,
	RunE: runWallet,
}

func init() {
	rootCmd.AddCommand(walletCmd)
}

func runWallet(cmd *cobra.Command, args []string) error {
	a := newApp()
	id, err := a.identity()
	if err != nil {
		return err
	}

	if GetJSONOutput() {
		return output.PrintJSON(map[string]string{
			"address": id.Address,
			"network": tokens.GetNetworkName(fundingNetwork),
		})
	}

	fmt.Printf("Wallet address: %s\n", id.Address)
	fmt.Println()
	fmt.Printf("To use paid APIs, send USDC to this address on %s.\n", tokens.GetNetworkName(fundingNetwork))
	fmt.Println("Payments are gasless EIP-3009 authorizations; you only need USDC, not ETH.")
	if url := tokens.GetAddressExplorerURL(fundingNetwork, id.Address); url != "" {
		fmt.Printf("View balance: %s\n", url)
	}
	return nil
}
