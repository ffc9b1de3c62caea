// Package policy implements the allowlist that gates paid API calls.
//
// An API may only be called once the user has explicitly approved its
// provider/api pair with a price ceiling. The gate is the single point of
// spend control: no entry, no call.
package policy

import (
	"time"

	"github.com/octorail/octorail-cli/internal/store"
)

// allowlistFile is the authorization document name.
const allowlistFile = "allowed-apis.json"

// Entry is one user-granted authorization.
type Entry struct {
	// MaxPrice is the approved per-call ceiling, a decimal string in the
	// provider's stated currency unit.
	MaxPrice string `json:"maxPrice"`

	// ApprovedAt is when the authorization was granted or last refreshed.
	ApprovedAt time.Time `json:"approvedAt"`
}

// Gate reads and mutates the allowlist.
type Gate struct {
	store store.Store
}

// NewGate creates a Gate over the given store.
func NewGate(s store.Store) *Gate {
	return &Gate{store: s}
}

// Key builds the allowlist key for a provider/api pair.
func Key(provider, api string) string {
	return provider + "/" + api
}

// load returns the allowlist, empty when the document is missing or corrupt.
func (g *Gate) load() (map[string]Entry, error) {
	entries := make(map[string]Entry)
	if _, err := g.store.Load(allowlistFile, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]Entry)
	}
	return entries, nil
}

// IsApproved looks up the authorization for a provider/api pair. Returns nil
// when no entry exists. Pure lookup, no side effects.
func (g *Gate) IsApproved(provider, api string) (*Entry, error) {
	entries, err := g.load()
	if err != nil {
		return nil, err
	}
	if entry, ok := entries[Key(provider, api)]; ok {
		return &entry, nil
	}
	return nil, nil
}

// Approve grants (or re-grants) authorization. Re-approval replaces the
// price and refreshes the timestamp.
func (g *Gate) Approve(provider, api, maxPrice string) error {
	entries, err := g.load()
	if err != nil {
		return err
	}
	entries[Key(provider, api)] = Entry{
		MaxPrice:   maxPrice,
		ApprovedAt: time.Now().UTC(),
	}
	return g.store.Save(allowlistFile, entries, 0o644)
}

// Revoke removes the authorization. Revoking an absent entry is a no-op.
func (g *Gate) Revoke(provider, api string) error {
	entries, err := g.load()
	if err != nil {
		return err
	}
	delete(entries, Key(provider, api))
	return g.store.Save(allowlistFile, entries, 0o644)
}

// List returns a snapshot of all authorizations keyed by provider/api.
// Iteration order is not meaningful.
func (g *Gate) List() (map[string]Entry, error) {
	return g.load()
}
