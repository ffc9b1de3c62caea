// Package client implements the marketplace HTTP client.
//
// Every request is authenticated with fresh wallet headers. Paid calls go
// through the x402 handshake transparently: when the marketplace answers
// 402 Payment Required, the client signs an EIP-3009 transfer authorization
// and retries the same logical request once with the payment attached.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/octorail/octorail-cli/internal/tokens"
	"github.com/octorail/octorail-cli/internal/wallet"
	"github.com/octorail/octorail-cli/internal/x402"
)

// StatusError is a non-success response from the marketplace, carrying the
// status code and best-effort body text.
type StatusError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.Body)
}

// Marketplace is an authenticated client for the API marketplace.
type Marketplace struct {
	baseURL    string
	identity   *wallet.Identity
	httpClient *http.Client
}

// Option configures the Marketplace client.
type Option func(*Marketplace)

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Marketplace) {
		m.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Marketplace) {
		m.httpClient = c
	}
}

// New creates a Marketplace client for the given base URL, signing every
// request with the identity.
func New(baseURL string, identity *wallet.Identity, opts ...Option) *Marketplace {
	m := &Marketplace{
		baseURL:  baseURL,
		identity: identity,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// API is one catalog entry.
type API struct {
	Name           string       `json:"name"`
	Slug           string       `json:"slug"`
	OwnerHandle    string       `json:"ownerHandle,omitempty"`
	Owner          *Owner       `json:"owner,omitempty"`
	Price          string       `json:"price"`
	Category       string       `json:"category,omitempty"`
	UpstreamMethod string       `json:"upstreamMethod,omitempty"`
	Description    string       `json:"description,omitempty"`
	InputSchema    *InputSchema `json:"inputSchema,omitempty"`
	Stats          *APIStats    `json:"stats,omitempty"`
}

// Owner is the nested owner object some catalog responses use instead of
// the flat ownerHandle field.
type Owner struct {
	Handle string `json:"handle"`
}

// Handle returns the provider handle regardless of which shape the catalog
// used.
func (a *API) Handle() string {
	if a.OwnerHandle != "" {
		return a.OwnerHandle
	}
	if a.Owner != nil {
		return a.Owner.Handle
	}
	return ""
}

// InputSchema is the JSON-Schema-like description of an API's call body.
type InputSchema struct {
	Properties map[string]SchemaField `json:"properties"`
	Required   []string               `json:"required,omitempty"`
}

// SchemaField describes one input parameter.
type SchemaField struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// APIStats carries call volume metadata shown in listings.
type APIStats struct {
	TotalCalls      int `json:"totalCalls"`
	AvgResponseTime int `json:"avgResponseTime"`
}

// Catalog is a catalog listing page.
type Catalog struct {
	APIs []API `json:"apis"`
}

// ListOptions filters a catalog listing.
type ListOptions struct {
	Search   string
	Category string
}

// CallResult is the outcome of a paid API invocation.
type CallResult struct {
	// Payload is the remote's raw structured response.
	Payload map[string]interface{}

	// CallID is the provider-issued call identifier, empty if absent.
	CallID string

	// Status is the remote's reported status, "success" when absent.
	Status string

	// Payment is the settlement receipt when a payment was made.
	Payment *x402.PaymentResponse

	// Paid reports whether the 402 handshake ran for this call.
	Paid bool
}

// ListAPIs fetches the catalog, optionally filtered by free-text search
// and/or category. Read-only, but authenticated like every other request.
func (m *Marketplace) ListAPIs(opts ListOptions) (*Catalog, error) {
	params := url.Values{}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.Category != "" {
		params.Set("category", opts.Category)
	}

	path := "/apis"
	if qs := params.Encode(); qs != "" {
		path += "?" + qs
	}

	var catalog Catalog
	if err := m.getJSON(path, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// GetAPI fetches the detail record for one provider/api pair.
func (m *Marketplace) GetAPI(provider, api string) (*API, error) {
	var detail API
	if err := m.getJSON(fmt.Sprintf("/apis/%s/%s", provider, api), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CallAPI invokes a paid API with the given JSON body. maxPrice is the
// approved per-call ceiling in token units (e.g. "0.05" USDC); when the
// 402 handshake demands more than the ceiling for a known token, the call
// is refused before any signature is produced. An empty maxPrice disables
// the guard.
func (m *Marketplace) CallAPI(provider, api string, body map[string]interface{}, maxPrice string) (*CallResult, error) {
	if body == nil {
		body = map[string]interface{}{}
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode call body: %w", err)
	}

	path := fmt.Sprintf("/v1/apis/%s/%s/call", provider, api)
	respBody, receipt, paid, err := m.request(http.MethodPost, path, bodyBytes, maxPrice)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &payload); err != nil {
			return nil, fmt.Errorf("invalid JSON in call response: %w", err)
		}
	}

	result := &CallResult{
		Payload: payload,
		Status:  "success",
		Payment: receipt,
		Paid:    paid,
	}
	if id, ok := payload["callId"].(string); ok {
		result.CallID = id
	}
	if status, ok := payload["status"].(string); ok && status != "" {
		result.Status = status
	}

	return result, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
// Catalog reads are never expected to trigger payment, but they go through
// the same transport so a surprise 402 is still handled uniformly.
func (m *Marketplace) getJSON(path string, v interface{}) error {
	body, _, _, err := m.request(http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// request performs one logical request: send, and on 402 run the payment
// handshake and retry once. Returns the final response body, the settlement
// receipt if a payment happened, and whether the handshake ran.
func (m *Marketplace) request(method, path string, body []byte, maxPrice string) ([]byte, *x402.PaymentResponse, bool, error) {
	resp, err := m.send(method, path, body, nil)
	if err != nil {
		return nil, nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired {
		return m.payAndRetry(method, path, body, resp, maxPrice)
	}

	respBody, err := m.checkResponse(resp)
	if err != nil {
		return nil, nil, false, err
	}
	return respBody, nil, false, nil
}

// payAndRetry satisfies a 402 challenge and retries the request once.
func (m *Marketplace) payAndRetry(method, path string, body []byte, resp *http.Response, maxPrice string) ([]byte, *x402.PaymentResponse, bool, error) {
	parseResult, err := x402.ParsePaymentRequired(resp)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to parse payment requirements: %w", err)
	}

	option := x402.FindEVMOption(parseResult.PaymentRequired)
	if option == nil {
		return nil, nil, false, fmt.Errorf("no supported payment options offered")
	}

	chainID, err := x402.ExtractChainID(option.Network)
	if err != nil {
		return nil, nil, false, fmt.Errorf("invalid payment network: %w", err)
	}

	if err := m.checkCeiling(option, maxPrice); err != nil {
		return nil, nil, false, err
	}

	key, err := m.identity.PrivateKey()
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load signing key: %w", err)
	}

	signer := wallet.NewEVMSigner(key)
	signResult, err := signer.Sign(wallet.PrepareSignParams(option, m.identity.Address, chainID))
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to sign payment authorization: %w", err)
	}

	resource := parseResult.PaymentRequired.Resource
	if parseResult.ProtocolVersion == x402.ProtocolV1 {
		resource = x402.ResourceInfo{URL: m.baseURL + path}
	}

	headerName, headerValue, err := x402.BuildAndEncodePayload(
		parseResult.ProtocolVersion,
		resource,
		option,
		signResult.Signature,
		signResult.Authorization,
	)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to build payment payload: %w", err)
	}

	retryResp, err := m.send(method, path, body, map[string]string{headerName: headerValue})
	if err != nil {
		return nil, nil, true, fmt.Errorf("payment retry failed: %w", err)
	}
	defer retryResp.Body.Close()

	receipt, _ := x402.ParsePaymentResponse(retryResp, parseResult.ProtocolVersion)

	respBody, err := m.checkResponse(retryResp)
	if err != nil {
		return nil, receipt, true, err
	}
	return respBody, receipt, true, nil
}

// checkCeiling refuses payments above the approved per-call ceiling. Only
// enforceable for tokens in the registry; unknown tokens pass through and
// the marketplace's stated price is trusted.
func (m *Marketplace) checkCeiling(option *x402.PaymentRequirement, maxPrice string) error {
	if maxPrice == "" {
		return nil
	}

	info := tokens.GetTokenInfo(option.Network, option.Asset)
	if info == nil {
		return nil
	}

	maxRaw, err := tokens.ParseHumanAmount(maxPrice, info.Decimals)
	if err != nil {
		return fmt.Errorf("invalid approved price %q: %w", maxPrice, err)
	}

	if tokens.CompareAmounts(option.GetAmount(), maxRaw) > 0 {
		demanded := tokens.FormatAmount(option.GetAmount(), info.Decimals, info.Symbol)
		return fmt.Errorf("payment of %s exceeds approved ceiling %s %s", demanded, maxPrice, info.Symbol)
	}

	return nil
}

// send builds and performs one HTTP request with content-type and fresh
// wallet auth headers.
func (m *Marketplace) send(method, path string, body []byte, extraHeaders map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, m.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	authHeaders, err := wallet.AuthHeaders(m.identity)
	if err != nil {
		return nil, err
	}
	for k, v := range authHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	return m.httpClient.Do(req)
}

// checkResponse reads the body and converts non-2xx statuses into a
// StatusError. A failed body read substitutes an empty string rather than
// masking the status.
func (m *Marketplace) checkResponse(resp *http.Response) ([]byte, error) {
	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text := ""
		if readErr == nil {
			text = string(body)
		}
		return nil, &StatusError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       text,
		}
	}

	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %w", readErr)
	}
	return body, nil
}
