package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octorail/octorail-cli/internal/store"
)

func record(provider, api, price string) Record {
	return Record{
		Provider:  provider,
		API:       api,
		Price:     price,
		Status:    "success",
		Timestamp: time.Now().UTC(),
	}
}

func callID(s string) *string {
	return &s
}

func TestLedger_RecordAndRecentOrdering(t *testing.T) {
	l := New(store.NewMemStore())

	c1 := record("acme", "weather", "0.05")
	c1.CallID = callID("call-1")
	c2 := record("bob", "translate", "0.02")
	c2.CallID = callID("call-2")

	require.NoError(t, l.Record(c1))
	require.NoError(t, l.Record(c2))

	recent, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Most recent first.
	require.NotNil(t, recent[0].CallID)
	require.NotNil(t, recent[1].CallID)
	assert.Equal(t, "call-2", *recent[0].CallID)
	assert.Equal(t, "call-1", *recent[1].CallID)
}

func TestLedger_RecentLimit(t *testing.T) {
	l := New(store.NewMemStore())

	for i := 0; i < 5; i++ {
		r := record("acme", "weather", "0.01")
		r.CallID = callID(string(rune('a' + i)))
		require.NoError(t, l.Record(r))
	}

	recent, err := l.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.NotNil(t, recent[0].CallID)
	assert.Equal(t, "e", *recent[0].CallID)
}

func TestLedger_RecentDefaultLimit(t *testing.T) {
	l := New(store.NewMemStore())

	for i := 0; i < 25; i++ {
		require.NoError(t, l.Record(record("acme", "weather", "0.01")))
	}

	recent, err := l.Recent(0)
	require.NoError(t, err)
	assert.Len(t, recent, DefaultLimit)
}

func TestLedger_RecentFewerThanLimit(t *testing.T) {
	l := New(store.NewMemStore())
	require.NoError(t, l.Record(record("acme", "weather", "0.01")))

	recent, err := l.Recent(10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestLedger_RecentEmpty(t *testing.T) {
	l := New(store.NewMemStore())

	recent, err := l.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestLedger_SummarizeTotalsAndMalformedPrices(t *testing.T) {
	l := New(store.NewMemStore())

	require.NoError(t, l.Record(record("acme", "weather", "0.10")))
	require.NoError(t, l.Record(record("acme", "weather", "0.20")))
	require.NoError(t, l.Record(record("acme", "weather", "abc")))

	summary, err := l.Summarize()
	require.NoError(t, err)

	// Malformed prices count as zero.
	assert.Equal(t, "0.30", summary.Total)
	require.Contains(t, summary.ByAPI, "acme/weather")
	assert.Equal(t, 3, summary.ByAPI["acme/weather"].Calls)
	assert.Equal(t, "0.30", summary.ByAPI["acme/weather"].Spent)
}

func TestLedger_SummarizePerAPI(t *testing.T) {
	l := New(store.NewMemStore())

	require.NoError(t, l.Record(record("acme", "weather", "0.05")))
	require.NoError(t, l.Record(record("bob", "translate", "0.02")))
	require.NoError(t, l.Record(record("bob", "translate", "0.02")))

	summary, err := l.Summarize()
	require.NoError(t, err)

	assert.Equal(t, "0.09", summary.Total)
	assert.Equal(t, 1, summary.ByAPI["acme/weather"].Calls)
	assert.Equal(t, 2, summary.ByAPI["bob/translate"].Calls)
	assert.Equal(t, "0.04", summary.ByAPI["bob/translate"].Spent)
}

func TestLedger_SummarizeNoDriftOverManyCents(t *testing.T) {
	l := New(store.NewMemStore())

	// 0.01 summed 100 times is exactly 1.00 with rational arithmetic;
	// float64 would show drift.
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Record(record("acme", "weather", "0.01")))
	}

	summary, err := l.Summarize()
	require.NoError(t, err)
	assert.Equal(t, "1.00", summary.Total)
}

func TestLedger_SummarizeEmpty(t *testing.T) {
	l := New(store.NewMemStore())

	summary, err := l.Summarize()
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.Total)
	assert.Empty(t, summary.ByAPI)
}

func TestLedger_CorruptHistoryDegradesToEmpty(t *testing.T) {
	s := store.NewMemStore()
	l := New(s)
	require.NoError(t, l.Record(record("acme", "weather", "0.05")))
	s.Corrupt("call-history.json")

	recent, err := l.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestLedger_AbsentCallIDPersistsAsNull(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, New(store.NewFileStore(dir)).Record(record("acme", "weather", "0.05")))

	// Records without a provider-issued ID keep an explicit null in the
	// document rather than dropping the field.
	data, err := os.ReadFile(filepath.Join(dir, "call-history.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"callId": null`)
}

func TestLedger_FileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, New(store.NewFileStore(dir)).Record(record("acme", "weather", "0.05")))

	recent, err := New(store.NewFileStore(dir)).Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "acme", recent[0].Provider)
}
