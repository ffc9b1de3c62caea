package x402

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// caip2EVMPrefix is the prefix for EVM chains in CAIP-2 format.
const caip2EVMPrefix = "eip155:"

// ParseResult contains the parsed payment requirements and metadata.
type ParseResult struct {
	PaymentRequired *PaymentRequired
	ProtocolVersion int
	RawHeader       string // Original header value (v2) or empty (v1)
	RawBody         []byte // Response body
}

// ParsePaymentRequired extracts payment requirements from a 402 response.
// Auto-detects the protocol version: v2 carries the requirements base64
// encoded in the Payment-Required header, v1 in the response body as plain
// JSON.
func ParsePaymentRequired(resp *http.Response) (*ParseResult, error) {
	result := &ParseResult{}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	result.RawBody = body

	if header := resp.Header.Get(HeaderPaymentRequired); header != "" {
		result.ProtocolVersion = ProtocolV2
		result.RawHeader = header

		decoded, err := base64.StdEncoding.DecodeString(header)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 in %s header: %w", HeaderPaymentRequired, err)
		}

		var pr PaymentRequired
		if err := json.Unmarshal(decoded, &pr); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s header: %w", HeaderPaymentRequired, err)
		}
		result.PaymentRequired = &pr
	} else {
		result.ProtocolVersion = ProtocolV1

		if len(body) == 0 {
			return nil, fmt.Errorf("empty response body (expected JSON payment requirements)")
		}

		var pr PaymentRequired
		if err := json.Unmarshal(body, &pr); err != nil {
			return nil, fmt.Errorf("invalid JSON in response body: %w", err)
		}
		result.PaymentRequired = &pr
	}

	if len(result.PaymentRequired.Accepts) == 0 {
		return nil, fmt.Errorf("no payment options in accepts[] array")
	}

	return result, nil
}

// ParsePaymentResponse extracts the settlement receipt from a successful
// response. Returns nil without error when the header is absent.
func ParsePaymentResponse(resp *http.Response, protocolVersion int) (*PaymentResponse, error) {
	headerName := HeaderXPaymentResponse
	if protocolVersion == ProtocolV2 {
		headerName = HeaderPaymentResponse
	}

	headerValue := resp.Header.Get(headerName)
	if headerValue == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(headerValue)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 in %s header: %w", headerName, err)
	}

	var pr PaymentResponse
	if err := json.Unmarshal(decoded, &pr); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s header: %w", headerName, err)
	}

	return &pr, nil
}

// networkNameToChainID maps common network names to their chain IDs.
// Handles v1 protocol which may use simple names instead of CAIP-2 format.
var networkNameToChainID = map[string]int64{
	// Mainnets
	"ethereum":  1,
	"mainnet":   1,
	"base":      8453,
	"polygon":   137,
	"arbitrum":  42161,
	"optimism":  10,
	"avalanche": 43114,
	// Testnets
	"sepolia":      11155111,
	"base-sepolia": 84532,
	"base_sepolia": 84532,
	"basesepolia":  84532,
}

// IsEVMNetwork checks if the network is an EVM-compatible chain. Supports
// both CAIP-2 format (eip155:*) and common network names.
func IsEVMNetwork(network string) bool {
	if strings.HasPrefix(network, caip2EVMPrefix) && len(network) > len(caip2EVMPrefix) {
		return true
	}
	_, ok := networkNameToChainID[network]
	return ok
}

// ExtractChainID extracts the numeric chain ID from a network string.
// Supports both CAIP-2 format (eip155:8453) and common names (base).
func ExtractChainID(network string) (int64, error) {
	if strings.HasPrefix(network, caip2EVMPrefix) {
		var chainID int64
		if _, err := fmt.Sscanf(network, caip2EVMPrefix+"%d", &chainID); err != nil {
			return 0, fmt.Errorf("invalid chain ID in network %s: %w", network, err)
		}
		return chainID, nil
	}

	if chainID, ok := networkNameToChainID[network]; ok {
		return chainID, nil
	}

	return 0, fmt.Errorf("unknown network: %s", network)
}

// FindEVMOption returns the first EVM-compatible payment option, or nil if
// none are available.
func FindEVMOption(pr *PaymentRequired) *PaymentRequirement {
	for i := range pr.Accepts {
		if IsEVMNetwork(pr.Accepts[i].Network) {
			return &pr.Accepts[i]
		}
	}
	return nil
}
