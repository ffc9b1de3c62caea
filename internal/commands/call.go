package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/octorail/octorail-cli/internal/client"
	"github.com/octorail/octorail-cli/internal/ledger"
	"github.com/octorail/octorail-cli/internal/output"
	"github.com/octorail/octorail-cli/internal/policy"
)

var callBody string

var callCmd = &cobra.Command{
	Use:   "call <provider> <api>",
	Short: "Call an approved API, paying automatically if required",
	Long: `Invoke a marketplace API.

The API must already be approved (see "octorail approve"); unapproved APIs
are blocked before any request is sent. If the marketplace demands payment,
the wallet signs a USDC transfer authorization up to the approved price
ceiling and the call is retried with the payment attached. Every executed
call is appended to the local history.

Examples:
  octorail call acme weather --body '{"city":"Lisbon"}'
  octorail call bob translate --body '{"text":"hi"}' --json`,
	Args: cobra.ExactArgs(2),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callBody, "body", "", "JSON request body")

	rootCmd.AddCommand(callCmd)
}

// marketCaller is the slice of the marketplace client the call pipeline
// needs. Narrowed for testability.
type marketCaller interface {
	CallAPI(provider, api string, body map[string]interface{}, maxPrice string) (*client.CallResult, error)
}

// executeCall runs the authorization-and-payment pipeline: gate check,
// body validation, remote call, history record. Blocked calls never reach
// the network and are never recorded. Calls that reach the network but fail
// are not recorded either: the record step only runs after the remote
// responds, so the history holds acknowledged outcomes only.
func executeCall(gate *policy.Gate, lgr *ledger.Ledger, market marketCaller, provider, api, bodyJSON string) (*client.CallResult, error) {
	entry, err := gate.IsApproved(provider, api)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%s/%s is not in your allowlist (approve it first: octorail approve %s %s --max-price <price>)",
			provider, api, provider, api)
	}

	body := map[string]interface{}{}
	if bodyJSON != "" {
		if err := json.Unmarshal([]byte(bodyJSON), &body); err != nil {
			return nil, fmt.Errorf("invalid --body JSON: %w", err)
		}
	}

	result, err := market.CallAPI(provider, api, body, entry.MaxPrice)
	if err != nil {
		return nil, err
	}

	var callID *string
	if result.CallID != "" {
		callID = &result.CallID
	}

	record := ledger.Record{
		Provider:  provider,
		API:       api,
		Price:     entry.MaxPrice,
		CallID:    callID,
		Status:    result.Status,
		Timestamp: time.Now().UTC(),
	}
	if err := lgr.Record(record); err != nil {
		return nil, fmt.Errorf("call succeeded but recording history failed: %w", err)
	}

	return result, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	provider, api := args[0], args[1]

	a := newApp()
	id, err := a.identity()
	if err != nil {
		return err
	}

	if GetVerbose() && !GetJSONOutput() {
		fmt.Fprintf(os.Stderr, "• Calling %s/%s as %s...\n", provider, api, id.Address)
	}

	result, err := executeCall(a.gate, a.ledger, a.marketplace(id), provider, api, callBody)
	if err != nil {
		return err
	}

	if GetJSONOutput() {
		return output.PrintJSON(result.Payload)
	}

	output.PrintCallResult(result)
	return nil
}
