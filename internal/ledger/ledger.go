// Package ledger records every API call attempt and derives spend totals.
//
// The history document is append-only: records are never mutated or removed,
// and revoking an API's authorization does not touch its history. The spend
// summary is recomputed from the full sequence on every request, so there is
// no separate aggregate state that could drift out of sync.
package ledger

import (
	"math/big"
	"time"

	"github.com/octorail/octorail-cli/internal/store"
)

// historyFile is the call history document name.
const historyFile = "call-history.json"

// DefaultLimit is how many recent records Recent returns when the caller
// does not specify a limit.
const DefaultLimit = 20

// Record is one immutable log entry of an attempted API invocation.
type Record struct {
	Provider string `json:"provider"`
	API      string `json:"api"`

	// Price is the approved ceiling at call time, not the amount the
	// provider actually charged. Kept as a decimal string.
	Price string `json:"price"`

	// CallID is the provider-issued identifier, null when the remote
	// never returned one.
	CallID *string `json:"callId"`

	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Key returns the provider/api key for this record.
func (r Record) Key() string {
	return r.Provider + "/" + r.API
}

// APISpend aggregates calls and spend for one provider/api pair.
type APISpend struct {
	Calls int    `json:"calls"`
	Spent string `json:"spent"`
}

// Summary is the derived spend accounting over the whole history.
type Summary struct {
	// Total is the sum of all recorded prices, two decimal places.
	Total string `json:"total"`

	// ByAPI maps provider/api to its aggregate calls and spend.
	ByAPI map[string]APISpend `json:"byApi"`
}

// Ledger persists call records through a Store.
type Ledger struct {
	store store.Store
}

// New creates a Ledger over the given store.
func New(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// load returns the full history, oldest first. Missing or corrupt documents
// degrade to an empty history.
func (l *Ledger) load() ([]Record, error) {
	var records []Record
	if _, err := l.store.Load(historyFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Record appends one entry and persists immediately.
func (l *Ledger) Record(r Record) error {
	records, err := l.load()
	if err != nil {
		return err
	}
	records = append(records, r)
	return l.store.Save(historyFile, records, 0o644)
}

// Recent returns up to limit records, most recent first. A limit of zero or
// less means DefaultLimit.
func (l *Ledger) Recent(limit int) ([]Record, error) {
	records, err := l.load()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > len(records) {
		limit = len(records)
	}

	recent := make([]Record, 0, limit)
	for i := len(records) - 1; i >= len(records)-limit; i-- {
		recent = append(recent, records[i])
	}
	return recent, nil
}

// Summarize recomputes spend totals from the full history. Prices that do
// not parse as decimals count as zero. Summation uses big.Rat so repeated
// cents never accumulate binary rounding drift.
func (l *Ledger) Summarize() (*Summary, error) {
	records, err := l.load()
	if err != nil {
		return nil, err
	}

	total := new(big.Rat)
	perKey := make(map[string]*big.Rat)
	counts := make(map[string]int)

	for _, r := range records {
		amount, ok := new(big.Rat).SetString(r.Price)
		if !ok {
			amount = new(big.Rat)
		}
		total.Add(total, amount)

		key := r.Key()
		if perKey[key] == nil {
			perKey[key] = new(big.Rat)
		}
		perKey[key].Add(perKey[key], amount)
		counts[key]++
	}

	byAPI := make(map[string]APISpend, len(perKey))
	for key, spent := range perKey {
		byAPI[key] = APISpend{
			Calls: counts[key],
			Spent: spent.FloatString(2),
		}
	}

	return &Summary{
		Total: total.FloatString(2),
		ByAPI: byAPI,
	}, nil
}
