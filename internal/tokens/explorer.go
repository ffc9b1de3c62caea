package tokens

import "fmt"

// explorerURLs maps network identifiers to block explorer base URLs.
var explorerURLs = map[string]string{
	// CAIP-2 format
	"eip155:1":        "https://etherscan.io",
	"eip155:8453":     "https://basescan.org",
	"eip155:84532":    "https://sepolia.basescan.org",
	"eip155:11155111": "https://sepolia.etherscan.io",
	"eip155:137":      "https://polygonscan.com",

	// Simple names (v1 protocol compatibility)
	"ethereum":     "https://etherscan.io",
	"mainnet":      "https://etherscan.io",
	"base":         "https://basescan.org",
	"base-sepolia": "https://sepolia.basescan.org",
	"base_sepolia": "https://sepolia.basescan.org",
	"basesepolia":  "https://sepolia.basescan.org",
	"sepolia":      "https://sepolia.etherscan.io",
	"polygon":      "https://polygonscan.com",
}

// GetExplorerURL returns the block explorer URL for a transaction.
// Returns empty string if the network is not in the registry.
func GetExplorerURL(network, txHash string) string {
	baseURL, ok := explorerURLs[network]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", baseURL, txHash)
}

// GetAddressExplorerURL returns the block explorer URL for an address.
func GetAddressExplorerURL(network, address string) string {
	baseURL, ok := explorerURLs[network]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/address/%s", baseURL, address)
}

// HasExplorer returns true if a block explorer URL is known for the network.
func HasExplorer(network string) bool {
	_, ok := explorerURLs[network]
	return ok
}
