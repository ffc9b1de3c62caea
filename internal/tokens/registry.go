// Package tokens provides token metadata, amount formatting, and block
// explorer URLs for the networks the marketplace settles on.
package tokens

import "strings"

// TokenInfo contains metadata for a known token.
type TokenInfo struct {
	Symbol   string
	Decimals int
	Name     string
}

// knownTokens maps "network:asset" to token metadata. Keys are lowercase for
// case-insensitive lookup. Supports both CAIP-2 format (eip155:*) and simple
// network names.
var knownTokens = map[string]TokenInfo{
	// Base Mainnet
	"eip155:8453:0x833589fcd6edb6e08f4c7c32d4f71b54bda02913": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USD Coin",
	},
	"base:0x833589fcd6edb6e08f4c7c32d4f71b54bda02913": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USD Coin",
	},

	// Base Sepolia
	"eip155:84532:0x036cbd53842c5426634e7929541ec2318f3dcf7e": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USDC (Testnet)",
	},
	"base-sepolia:0x036cbd53842c5426634e7929541ec2318f3dcf7e": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USDC (Testnet)",
	},

	// Ethereum Mainnet
	"eip155:1:0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USD Coin",
	},
	"ethereum:0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USD Coin",
	},

	// Ethereum Sepolia
	"eip155:11155111:0x1c7d4b196cb0c7b01d743fbc6116a902379c7238": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USDC (Testnet)",
	},
	"sepolia:0x1c7d4b196cb0c7b01d743fbc6116a902379c7238": {
		Symbol:   "USDC",
		Decimals: 6,
		Name:     "USDC (Testnet)",
	},
}

// NetworkInfo contains metadata for a known network.
type NetworkInfo struct {
	Name      string
	IsTestnet bool
}

// networkNames maps network identifiers to human-readable names.
var networkNames = map[string]NetworkInfo{
	// CAIP-2 format
	"eip155:1":        {Name: "Ethereum Mainnet", IsTestnet: false},
	"eip155:8453":     {Name: "Base Mainnet", IsTestnet: false},
	"eip155:84532":    {Name: "Base Sepolia", IsTestnet: true},
	"eip155:11155111": {Name: "Ethereum Sepolia", IsTestnet: true},
	"eip155:137":      {Name: "Polygon Mainnet", IsTestnet: false},

	// Simple names (v1 protocol compatibility)
	"ethereum":     {Name: "Ethereum Mainnet", IsTestnet: false},
	"mainnet":      {Name: "Ethereum Mainnet", IsTestnet: false},
	"base":         {Name: "Base Mainnet", IsTestnet: false},
	"base-sepolia": {Name: "Base Sepolia", IsTestnet: true},
	"base_sepolia": {Name: "Base Sepolia", IsTestnet: true},
	"basesepolia":  {Name: "Base Sepolia", IsTestnet: true},
	"sepolia":      {Name: "Ethereum Sepolia", IsTestnet: true},
	"polygon":      {Name: "Polygon Mainnet", IsTestnet: false},
}

// GetTokenInfo looks up token metadata by network and asset address.
// Returns nil if the token is not in the registry.
func GetTokenInfo(network, asset string) *TokenInfo {
	key := strings.ToLower(network + ":" + asset)
	if info, ok := knownTokens[key]; ok {
		return &info
	}
	return nil
}

// GetNetworkInfo looks up network metadata. Returns nil if unknown.
func GetNetworkInfo(network string) *NetworkInfo {
	if info, ok := networkNames[network]; ok {
		return &info
	}
	return nil
}

// GetNetworkName returns a human-readable network name, falling back to the
// raw identifier.
func GetNetworkName(network string) string {
	if info := GetNetworkInfo(network); info != nil {
		return info.Name
	}
	return network
}

// IsTestnet returns true if the network is a known testnet.
func IsTestnet(network string) bool {
	if info := GetNetworkInfo(network); info != nil {
		return info.IsTestnet
	}
	return false
}
