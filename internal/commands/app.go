package commands

import (
	"github.com/octorail/octorail-cli/internal/client"
	"github.com/octorail/octorail-cli/internal/config"
	"github.com/octorail/octorail-cli/internal/ledger"
	"github.com/octorail/octorail-cli/internal/policy"
	"github.com/octorail/octorail-cli/internal/store"
	"github.com/octorail/octorail-cli/internal/wallet"
)

// app wires the local state and the marketplace client for one command
// invocation. Every invocation reads persisted state fresh; nothing is
// shared across processes.
type app struct {
	cfg    *config.Config
	store  store.Store
	gate   *policy.Gate
	ledger *ledger.Ledger
}

func newApp() *app {
	cfg := config.Load(config.DefaultDir())
	st := store.NewFileStore(cfg.DataDir)
	return &app{
		cfg:    cfg,
		store:  st,
		gate:   policy.NewGate(st),
		ledger: ledger.New(st),
	}
}

// identity returns the wallet identity, provisioning it on first use.
func (a *app) identity() (*wallet.Identity, error) {
	return wallet.LoadOrCreate(a.store)
}

// marketplace builds the authenticated marketplace client.
func (a *app) marketplace(id *wallet.Identity) *client.Marketplace {
	return client.New(a.cfg.URL, id, client.WithTimeout(a.cfg.Timeout()))
}
