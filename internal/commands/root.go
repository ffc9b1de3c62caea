// Package commands implements the CLI commands using Cobra.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Global flags
var (
	verbose    bool
	jsonOutput bool
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "octorail",
	Short: "CLI for the OctoRail paid-API marketplace",
	Long: `octorail is a command-line client for an API marketplace whose calls are
paid with USDC micropayments over the x402 protocol.

A local wallet signs every request. Before an API can be called it must be
approved into a local allowlist with a per-call price ceiling; every call
made is recorded in a local history for spend accounting.

Commands:
  list      Browse the API catalog
  get       Show API details and input schema
  approve   Allow an API to be called (sets the price ceiling)
  revoke    Remove an API from the allowlist
  call      Call an approved API (pays automatically if required)
  approved  List approved APIs
  history   Spending history
  wallet    Show the wallet address

Examples:
  # Find an API
  octorail list --search weather

  # Approve and call it
  octorail approve acme weather --max-price 0.05
  octorail call acme weather --body '{"city":"Lisbon"}'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Bare invocation and unrecognized subcommands both show usage and exit
	// zero; only real command failures are errors.
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Failures print a single Error line and
// exit non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}

// GetVerbose returns the verbose flag value.
func GetVerbose() bool {
	return verbose
}

// GetJSONOutput returns the json output flag value.
func GetJSONOutput() bool {
	return jsonOutput
}
