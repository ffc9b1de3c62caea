package x402

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOption() *PaymentRequirement {
	return &PaymentRequirement{
		Scheme:            "exact",
		Network:           "eip155:84532",
		Amount:            "10000",
		Asset:             "0x036cbd53842c5426634e7929541ec2318f3dcf7e",
		PayTo:             "0x64c2310BD1151266AA2Ad2410447E133b7F84e29",
		MaxTimeoutSeconds: 300,
	}
}

func sampleAuth() Authorization {
	return Authorization{
		From:        "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		To:          "0x64c2310BD1151266AA2Ad2410447E133b7F84e29",
		Value:       "10000",
		ValidAfter:  "0",
		ValidBefore: "1700000300",
		Nonce:       "0x1111111111111111111111111111111111111111111111111111111111111111",
	}
}

func TestBuildPayloadV2(t *testing.T) {
	resource := ResourceInfo{URL: "https://market.example.com/v1/apis/acme/weather/call"}

	payload := BuildPayloadV2(resource, sampleOption(), "0xsig", sampleAuth())

	assert.Equal(t, ProtocolV2, payload.X402Version)
	assert.Equal(t, resource, payload.Resource)
	assert.Equal(t, "exact", payload.Accepted.Scheme)
	assert.Equal(t, "10000", payload.Accepted.Amount)
	assert.Equal(t, "0xsig", payload.Payload.Signature)
	assert.Equal(t, sampleAuth(), payload.Payload.Authorization)
}

func TestBuildPayloadV1(t *testing.T) {
	payload := BuildPayloadV1(sampleOption(), "0xsig", sampleAuth())

	assert.Equal(t, ProtocolV1, payload.X402Version)
	assert.Equal(t, "exact", payload.Scheme)
	assert.Equal(t, "eip155:84532", payload.Network)
	assert.Equal(t, "0xsig", payload.Payload.Signature)
}

func TestEncodePayload_RoundTrip(t *testing.T) {
	payload := BuildPayloadV1(sampleOption(), "0xsig", sampleAuth())

	encoded, err := EncodePayload(payload)
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var got PaymentPayloadV1
	require.NoError(t, json.Unmarshal(decoded, &got))
	assert.Equal(t, *payload, got)
}

func TestBuildAndEncodePayload_HeaderSelection(t *testing.T) {
	resource := ResourceInfo{URL: "https://market.example.com"}

	headerName, headerValue, err := BuildAndEncodePayload(ProtocolV2, resource, sampleOption(), "0xsig", sampleAuth())
	require.NoError(t, err)
	assert.Equal(t, HeaderPaymentSignature, headerName)
	assert.NotEmpty(t, headerValue)

	headerName, _, err = BuildAndEncodePayload(ProtocolV1, resource, sampleOption(), "0xsig", sampleAuth())
	require.NoError(t, err)
	assert.Equal(t, HeaderXPayment, headerName)
}

func TestBuildAndEncodePayload_UnsupportedVersion(t *testing.T) {
	_, _, err := BuildAndEncodePayload(3, ResourceInfo{}, sampleOption(), "0xsig", sampleAuth())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported protocol version")
}

func TestGetAmount_VersionFields(t *testing.T) {
	v2 := PaymentRequirement{Amount: "500"}
	assert.Equal(t, "500", v2.GetAmount())

	v1 := PaymentRequirement{MaxAmountRequired: "700"}
	assert.Equal(t, "700", v1.GetAmount())

	both := PaymentRequirement{Amount: "500", MaxAmountRequired: "700"}
	assert.Equal(t, "500", both.GetAmount())
}

func TestGetExtraString(t *testing.T) {
	p := PaymentRequirement{Extra: map[string]interface{}{"name": "USDC", "decimals": 6}}

	assert.Equal(t, "USDC", p.GetExtraString("name"))
	assert.Equal(t, "", p.GetExtraString("decimals")) // not a string
	assert.Equal(t, "", p.GetExtraString("missing"))

	empty := PaymentRequirement{}
	assert.Equal(t, "", empty.GetExtraString("name"))
}
