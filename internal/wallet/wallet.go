// Package wallet manages the local signing identity and payment signatures.
package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/octorail/octorail-cli/internal/store"
)

// walletFile is the identity document name.
const walletFile = "wallet.json"

// Identity is the local signing keypair. The address both authenticates
// requests to the marketplace and receives payments.
type Identity struct {
	PrivateKeyHex string `json:"privateKey"`
	Address       string `json:"address"`
}

// LoadOrCreate returns the persisted identity, provisioning one on first
// use. Provisioning is idempotent: a valid stored identity is returned
// unchanged; a missing or malformed document triggers generation of a fresh
// key, persisted owner-readable only.
func LoadOrCreate(s store.Store) (*Identity, error) {
	var id Identity
	if found, err := s.Load(walletFile, &id); err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	} else if found && id.valid() {
		return &id, nil
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	id = Identity{
		PrivateKeyHex: "0x" + hex.EncodeToString(crypto.FromECDSA(key)),
		Address:       crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}

	if err := s.Save(walletFile, &id, 0o600); err != nil {
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	return &id, nil
}

// valid reports whether both fields are present and the key parses.
func (id *Identity) valid() bool {
	if id.PrivateKeyHex == "" || id.Address == "" {
		return false
	}
	_, err := id.PrivateKey()
	return err == nil
}

// PrivateKey decodes the stored key. Accepts hex with or without 0x prefix.
func (id *Identity) PrivateKey() (*ecdsa.PrivateKey, error) {
	return ParseKey(id.PrivateKeyHex)
}

// ParseKey loads an ECDSA private key from a hex string.
func ParseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimSpace(strings.TrimPrefix(hexKey, "0x"))

	keyBytes, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid hex private key: %w", err)
	}

	key, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return key, nil
}
