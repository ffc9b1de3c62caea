package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/octorail/octorail-cli/internal/client"
	"github.com/octorail/octorail-cli/internal/ledger"
	"github.com/octorail/octorail-cli/internal/policy"
	"github.com/octorail/octorail-cli/internal/tokens"
)

// PrintCatalog outputs a catalog listing in human-readable format.
func PrintCatalog(catalog *client.Catalog) {
	if len(catalog.APIs) == 0 {
		fmt.Println("No APIs found.")
		return
	}

	fmt.Printf("Found %d API(s):\n\n", len(catalog.APIs))
	for _, api := range catalog.APIs {
		meta := []string{api.Price}
		if api.Stats != nil && api.Stats.TotalCalls > 0 {
			meta = append(meta, fmt.Sprintf("%d calls", api.Stats.TotalCalls))
		}
		if api.Stats != nil && api.Stats.AvgResponseTime > 0 {
			meta = append(meta, fmt.Sprintf("~%dms", api.Stats.AvgResponseTime))
		}

		fmt.Printf("- %s (%s/%s) | %s\n", api.Name, api.Handle(), api.Slug, strings.Join(meta, " / "))

		description := api.Description
		if description == "" {
			description = "No description"
		}
		fmt.Printf("  %s\n\n", description)
	}
}

// PrintAPIDetail outputs one API's detail record including its input schema.
func PrintAPIDetail(api *client.API) {
	fmt.Printf("%s (%s/%s)\n", api.Name, api.Handle(), api.Slug)
	fmt.Printf("Price: %s\n", api.Price)
	fmt.Printf("Category: %s\n", api.Category)
	fmt.Printf("Method: %s\n", api.UpstreamMethod)

	description := api.Description
	if description == "" {
		description = "None"
	}
	fmt.Printf("Description: %s\n", description)

	if api.InputSchema == nil || len(api.InputSchema.Properties) == 0 {
		fmt.Println("\nNo input schema defined. Send a JSON body or no body.")
		return
	}

	required := make(map[string]bool, len(api.InputSchema.Required))
	for _, name := range api.InputSchema.Required {
		required[name] = true
	}

	// Stable order for scripting and tests.
	names := make([]string, 0, len(api.InputSchema.Properties))
	for name := range api.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nInput parameters:")
	for _, name := range names {
		field := api.InputSchema.Properties[name]
		req := " (optional)"
		if required[name] {
			req = " (required)"
		}
		description := field.Description
		if description == "" {
			description = "No description"
		}
		fmt.Printf("  - %s (%s)%s: %s\n", name, field.Type, req, description)
	}
}

// PrintApproved outputs the allowlist.
func PrintApproved(entries map[string]policy.Entry) {
	if len(entries) == 0 {
		fmt.Println("No APIs approved yet.")
		return
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println("Approved APIs:")
	fmt.Println()
	for _, key := range keys {
		entry := entries[key]
		fmt.Printf("- %s | max %s USDC (approved %s)\n",
			key, entry.MaxPrice, entry.ApprovedAt.Format(time.RFC3339))
	}
}

// PrintHistory outputs the spend summary followed by a table of recent
// calls, most recent first.
func PrintHistory(summary *ledger.Summary, recent []ledger.Record) {
	if len(recent) == 0 {
		fmt.Println("No API calls yet.")
		return
	}

	fmt.Printf("Total spent: $%s USDC\n\n", summary.Total)

	if len(summary.ByAPI) > 0 {
		keys := make([]string, 0, len(summary.ByAPI))
		for key := range summary.ByAPI {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Println("By API:")
		for _, key := range keys {
			spend := summary.ByAPI[key]
			fmt.Printf("  - %s: %d call(s), $%s USDC\n", key, spend.Calls, spend.Spent)
		}
		fmt.Println()
	}

	fmt.Printf("Recent calls (last %d):\n\n", len(recent))
	fmt.Println("| # | API | Price | Status | Date |")
	fmt.Println("|---|-----|-------|--------|------|")
	for i, call := range recent {
		date := call.Timestamp.Local().Format("Jan 2 15:04")
		fmt.Printf("| %d | %s | $%s | %s | %s |\n", i+1, call.Key(), call.Price, call.Status, date)
	}
}

// PrintCallResult outputs a call's payload, and the settlement receipt when
// a payment was made.
func PrintCallResult(result *client.CallResult) {
	body, err := FormatJSON(result.Payload)
	if err != nil {
		fmt.Printf("%v\n", result.Payload)
	} else {
		fmt.Println(body)
	}

	if result.Payment != nil && result.Payment.Transaction != "" {
		PrintInfo(fmt.Sprintf("Payment settled: %s", result.Payment.Transaction))
		if url := tokens.GetExplorerURL(result.Payment.Network, result.Payment.Transaction); url != "" {
			PrintInfo(fmt.Sprintf("View: %s", url))
		}
	}
}
