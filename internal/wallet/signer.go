package wallet

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/octorail/octorail-cli/internal/x402"
)

// Signer signs payment authorizations for the x402 handshake.
type Signer interface {
	// Sign creates a signature for the given payment parameters.
	Sign(params SignParams) (*SignResult, error)

	// Address returns the signer's address.
	Address() string
}

// SignParams contains parameters for one EIP-3009 payment authorization.
type SignParams struct {
	ChainID        int64  // EVM chain ID (e.g., 84532 for Base Sepolia)
	TokenAddress   string // Token contract address
	TokenName      string // Token name for the EIP-712 domain (e.g., "USDC")
	TokenVersion   string // Token version for the EIP-712 domain (e.g., "2")
	From           string // Payer address (signer)
	To             string // Recipient address
	Value          string // Amount in atomic units
	ValidAfter     int64  // Unix timestamp, usually 0
	ValidBefore    int64  // Unix timestamp for expiration; derived from TimeoutSeconds when 0
	TimeoutSeconds int    // Timeout for payment validity
}

// SignResult contains the signature and authorization details for the
// payment payload.
type SignResult struct {
	Signature     string
	Authorization x402.Authorization
	Nonce         string
}

// PrepareSignParams builds SignParams from a payment requirement and the
// payer address.
func PrepareSignParams(option *x402.PaymentRequirement, fromAddress string, chainID int64) SignParams {
	tokenName := option.GetExtraString("name")
	if tokenName == "" {
		tokenName = "USDC"
	}

	tokenVersion := option.GetExtraString("version")
	if tokenVersion == "" {
		tokenVersion = "2"
	}

	return SignParams{
		ChainID:        chainID,
		TokenAddress:   option.Asset,
		TokenName:      tokenName,
		TokenVersion:   tokenVersion,
		From:           fromAddress,
		To:             option.PayTo,
		Value:          option.GetAmount(),
		TimeoutSeconds: option.MaxTimeoutSeconds,
	}
}

// EVMSigner signs EIP-3009 TransferWithAuthorization messages with EIP-712
// typed data. The authorization lets the marketplace's facilitator move the
// tokens on-chain while paying the gas itself, so the wallet only ever needs
// USDC.
type EVMSigner struct {
	privateKey *ecdsa.PrivateKey
}

// NewEVMSigner creates a signer from an ECDSA private key.
func NewEVMSigner(key *ecdsa.PrivateKey) *EVMSigner {
	return &EVMSigner{privateKey: key}
}

// Address returns the Ethereum address for this signer.
func (s *EVMSigner) Address() string {
	return crypto.PubkeyToAddress(s.privateKey.PublicKey).Hex()
}

// Sign creates the EIP-712 signature over the transfer authorization.
func (s *EVMSigner) Sign(params SignParams) (*SignResult, error) {
	nonceBytes := make([]byte, 32)
	if _, err := rand.Read(nonceBytes); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce := common.BytesToHash(nonceBytes)
	nonceHex := "0x" + common.Bytes2Hex(nonce.Bytes())

	validBefore := params.ValidBefore
	if validBefore == 0 {
		timeout := params.TimeoutSeconds
		if timeout == 0 {
			timeout = 300
		}
		validBefore = time.Now().Unix() + int64(timeout)
	}

	value := new(big.Int)
	if _, ok := value.SetString(params.Value, 10); !ok {
		return nil, fmt.Errorf("invalid payment value: %q", params.Value)
	}

	typedData := transferAuthorizationTypedData(params, nonce, validBefore, value)

	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to hash domain: %w", err)
	}

	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to hash message: %w", err)
	}

	// keccak256("\x19\x01" || domainSeparator || messageHash)
	rawData := append([]byte{0x19, 0x01}, domainSeparator...)
	rawData = append(rawData, messageHash...)
	hash := crypto.Keccak256Hash(rawData)

	signature, err := crypto.Sign(hash.Bytes(), s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	if signature[64] < 27 {
		signature[64] += 27
	}

	return &SignResult{
		Signature: "0x" + common.Bytes2Hex(signature),
		Authorization: x402.Authorization{
			From:        params.From,
			To:          params.To,
			Value:       params.Value,
			ValidAfter:  fmt.Sprintf("%d", params.ValidAfter),
			ValidBefore: fmt.Sprintf("%d", validBefore),
			Nonce:       nonceHex,
		},
		Nonce: nonceHex,
	}, nil
}

// transferAuthorizationTypedData builds the EIP-712 typed data for
// TransferWithAuthorization.
func transferAuthorizationTypedData(params SignParams, nonce common.Hash, validBefore int64, value *big.Int) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"TransferWithAuthorization": {
				{Name: "from", Type: "address"},
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "validAfter", Type: "uint256"},
				{Name: "validBefore", Type: "uint256"},
				{Name: "nonce", Type: "bytes32"},
			},
		},
		PrimaryType: "TransferWithAuthorization",
		Domain: apitypes.TypedDataDomain{
			Name:              params.TokenName,
			Version:           params.TokenVersion,
			ChainId:           math.NewHexOrDecimal256(params.ChainID),
			VerifyingContract: params.TokenAddress,
		},
		Message: apitypes.TypedDataMessage{
			"from":        params.From,
			"to":          params.To,
			"value":       value.String(),
			"validAfter":  fmt.Sprintf("%d", params.ValidAfter),
			"validBefore": fmt.Sprintf("%d", validBefore),
			"nonce":       nonce.Hex(),
		},
	}
}
