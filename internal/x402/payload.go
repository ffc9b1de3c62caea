package x402

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// BuildPayloadV2 assembles the v2 payment payload. The resource and the
// accepted option are echoed back verbatim so the server can match the
// payment to the challenge it issued.
func BuildPayloadV2(resource ResourceInfo, option *PaymentRequirement, signature string, auth Authorization) *PaymentPayloadV2 {
	return &PaymentPayloadV2{
		X402Version: ProtocolV2,
		Resource:    resource,
		Accepted: AcceptedOption{
			Scheme:            option.Scheme,
			Network:           option.Network,
			Amount:            option.GetAmount(),
			Asset:             option.Asset,
			PayTo:             option.PayTo,
			MaxTimeoutSeconds: option.MaxTimeoutSeconds,
			Extra:             option.Extra,
		},
		Payload: ExactEvmPayload{
			Signature:     signature,
			Authorization: auth,
		},
	}
}

// BuildPayloadV1 assembles the v1 payment payload, which carries only the
// scheme, network, and signed authorization.
func BuildPayloadV1(option *PaymentRequirement, signature string, auth Authorization) *PaymentPayloadV1 {
	return &PaymentPayloadV1{
		X402Version: ProtocolV1,
		Scheme:      option.Scheme,
		Network:     option.Network,
		Payload: ExactEvmPayload{
			Signature:     signature,
			Authorization: auth,
		},
	}
}

// EncodePayload serializes a payload as base64 over compact JSON, the wire
// form both protocol versions expect in their payment header.
func EncodePayload(payload interface{}) (string, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(jsonBytes), nil
}

// BuildAndEncodePayload produces the payment header for the negotiated
// protocol version: Payment-Signature for v2, X-Payment for v1.
func BuildAndEncodePayload(
	protocolVersion int,
	resource ResourceInfo,
	option *PaymentRequirement,
	signature string,
	auth Authorization,
) (headerName string, headerValue string, err error) {
	switch protocolVersion {
	case ProtocolV2:
		headerValue, err = EncodePayload(BuildPayloadV2(resource, option, signature, auth))
		if err != nil {
			return "", "", err
		}
		return HeaderPaymentSignature, headerValue, nil

	case ProtocolV1:
		headerValue, err = EncodePayload(BuildPayloadV1(option, signature, auth))
		if err != nil {
			return "", "", err
		}
		return HeaderXPayment, headerValue, nil

	default:
		return "", "", fmt.Errorf("unsupported protocol version: %d", protocolVersion)
	}
}
