package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// authNamespace is the fixed tag bound into every request signature, so a
// signature produced for octorail cannot be replayed against another service.
const authNamespace = "octorail"

// Wallet authentication header names. The marketplace verifies the signature
// against the address and applies per-identity rate limits.
const (
	HeaderWallet    = "x-wallet"
	HeaderWalletSig = "x-wallet-sig"
	HeaderWalletTS  = "x-wallet-ts"
)

// AuthHeaders builds the wallet authentication headers for one request: the
// signer's address, a millisecond timestamp, and an EIP-191 personal-message
// signature over "octorail:<timestamp>". Each call produces a fresh
// timestamp, so no session state is needed.
func AuthHeaders(id *Identity) (map[string]string, error) {
	key, err := id.PrivateKey()
	if err != nil {
		return nil, err
	}

	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	sig, err := SignMessage(key, authNamespace+":"+ts)
	if err != nil {
		return nil, fmt.Errorf("failed to sign auth message: %w", err)
	}

	return map[string]string{
		HeaderWallet:    id.Address,
		HeaderWalletSig: sig,
		HeaderWalletTS:  ts,
	}, nil
}

// SignMessage produces an EIP-191 personal-message signature, hex encoded
// with 0x prefix and the v value adjusted to 27/28.
func SignMessage(key *ecdsa.PrivateKey, message string) (string, error) {
	hash := accounts.TextHash([]byte(message))

	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return "", err
	}
	if sig[64] < 27 {
		sig[64] += 27
	}

	return "0x" + common.Bytes2Hex(sig), nil
}
