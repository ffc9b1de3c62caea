// octorail is a CLI for the OctoRail paid-API marketplace.
//
// APIs on the marketplace are metered: each call is paid with a USDC
// micropayment over the x402 protocol (HTTP 402 Payment Required plus an
// EIP-3009 gasless transfer authorization). The CLI keeps a local wallet,
// a user-controlled allowlist that gates which APIs may be paid for, and a
// history of every call it has made.
//
// Usage:
//
//	octorail list                    Browse the API catalog
//	octorail approve <provider> <api>  Allow an API to be called
//	octorail call <provider> <api>     Call an approved API
//	octorail history                 Spending history
//
// For more information, visit: https://github.com/octorail/octorail-cli
package main

import "github.com/octorail/octorail-cli/internal/commands"

func main() {
	commands.Execute()
}
