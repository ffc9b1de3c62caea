package wallet

import (
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octorail/octorail-cli/internal/x402"
)

func baseSepoliaParams() SignParams {
	return SignParams{
		ChainID:        84532, // Base Sepolia
		TokenAddress:   "0x036cbd53842c5426634e7929541ec2318f3dcf7e",
		TokenName:      "USDC",
		TokenVersion:   "2",
		From:           testAddress,
		To:             "0x64c2310BD1151266AA2Ad2410447E133b7F84e29",
		Value:          "10000",
		ValidAfter:     0,
		TimeoutSeconds: 300,
	}
}

func TestEVMSigner_Sign(t *testing.T) {
	key, err := ParseKey(testPrivateKeyHex)
	require.NoError(t, err)

	result, err := NewEVMSigner(key).Sign(baseSepoliaParams())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, strings.HasPrefix(result.Signature, "0x"))
	assert.Len(t, result.Signature, 132) // 0x + 130 hex chars = 65 bytes

	assert.Equal(t, testAddress, result.Authorization.From)
	assert.Equal(t, "0x64c2310BD1151266AA2Ad2410447E133b7F84e29", result.Authorization.To)
	assert.Equal(t, "10000", result.Authorization.Value)
	assert.Equal(t, "0", result.Authorization.ValidAfter)
	assert.NotEmpty(t, result.Authorization.ValidBefore)

	assert.True(t, strings.HasPrefix(result.Nonce, "0x"))
	assert.Len(t, result.Nonce, 66) // 0x + 64 hex chars = 32 bytes
}

func TestEVMSigner_SignatureVValue(t *testing.T) {
	key, err := ParseKey(testPrivateKeyHex)
	require.NoError(t, err)

	result, err := NewEVMSigner(key).Sign(baseSepoliaParams())
	require.NoError(t, err)

	sigBytes, err := hex.DecodeString(strings.TrimPrefix(result.Signature, "0x"))
	require.NoError(t, err)
	require.Len(t, sigBytes, 65)

	v := sigBytes[64]
	assert.True(t, v == 27 || v == 28, "v value should be 27 or 28, got %d", v)
}

func TestEVMSigner_NonceUniqueness(t *testing.T) {
	key, err := ParseKey(testPrivateKeyHex)
	require.NoError(t, err)
	signer := NewEVMSigner(key)

	first, err := signer.Sign(baseSepoliaParams())
	require.NoError(t, err)
	second, err := signer.Sign(baseSepoliaParams())
	require.NoError(t, err)

	assert.NotEqual(t, first.Nonce, second.Nonce)
	assert.NotEqual(t, first.Signature, second.Signature)
}

func TestEVMSigner_ValidBeforeFromTimeout(t *testing.T) {
	key, err := ParseKey(testPrivateKeyHex)
	require.NoError(t, err)

	params := baseSepoliaParams()
	params.TimeoutSeconds = 600

	before := time.Now().Unix()
	result, err := NewEVMSigner(key).Sign(params)
	require.NoError(t, err)

	validBefore, err := strconv.ParseInt(result.Authorization.ValidBefore, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, validBefore, before+600)
	assert.LessOrEqual(t, validBefore, time.Now().Unix()+600)
}

func TestEVMSigner_InvalidValue(t *testing.T) {
	key, err := ParseKey(testPrivateKeyHex)
	require.NoError(t, err)

	params := baseSepoliaParams()
	params.Value = "not-a-number"

	_, err = NewEVMSigner(key).Sign(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment value")
}

func TestEVMSigner_Address(t *testing.T) {
	key, err := ParseKey(testPrivateKeyHex)
	require.NoError(t, err)

	assert.Equal(t, testAddress, NewEVMSigner(key).Address())
}

func TestPrepareSignParams(t *testing.T) {
	option := &x402.PaymentRequirement{
		Scheme:            "exact",
		Network:           "eip155:84532",
		Amount:            "10000",
		Asset:             "0x036cbd53842c5426634e7929541ec2318f3dcf7e",
		PayTo:             "0x64c2310BD1151266AA2Ad2410447E133b7F84e29",
		MaxTimeoutSeconds: 120,
		Extra:             map[string]interface{}{"name": "USDC", "version": "2"},
	}

	params := PrepareSignParams(option, testAddress, 84532)

	assert.Equal(t, int64(84532), params.ChainID)
	assert.Equal(t, option.Asset, params.TokenAddress)
	assert.Equal(t, "USDC", params.TokenName)
	assert.Equal(t, "2", params.TokenVersion)
	assert.Equal(t, testAddress, params.From)
	assert.Equal(t, option.PayTo, params.To)
	assert.Equal(t, "10000", params.Value)
	assert.Equal(t, 120, params.TimeoutSeconds)
}

func TestPrepareSignParams_DefaultTokenMetadata(t *testing.T) {
	option := &x402.PaymentRequirement{
		Scheme:  "exact",
		Network: "eip155:84532",
		Amount:  "10000",
	}

	params := PrepareSignParams(option, testAddress, 84532)

	assert.Equal(t, "USDC", params.TokenName)
	assert.Equal(t, "2", params.TokenVersion)
}
