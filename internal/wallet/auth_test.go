package wallet

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHeaders_ContainsAllAttributes(t *testing.T) {
	id := &Identity{PrivateKeyHex: testPrivateKeyHex, Address: testAddress}

	headers, err := AuthHeaders(id)
	require.NoError(t, err)

	assert.Equal(t, testAddress, headers[HeaderWallet])
	assert.True(t, strings.HasPrefix(headers[HeaderWalletSig], "0x"))
	assert.NotEmpty(t, headers[HeaderWalletTS])
}

func TestAuthHeaders_TimestampIsCurrent(t *testing.T) {
	id := &Identity{PrivateKeyHex: testPrivateKeyHex, Address: testAddress}

	before := time.Now().UnixMilli()
	headers, err := AuthHeaders(id)
	require.NoError(t, err)
	after := time.Now().UnixMilli()

	ts, err := strconv.ParseInt(headers[HeaderWalletTS], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
}

func TestAuthHeaders_SignatureRecoversToAddress(t *testing.T) {
	id := &Identity{PrivateKeyHex: testPrivateKeyHex, Address: testAddress}

	headers, err := AuthHeaders(id)
	require.NoError(t, err)

	sig, err := hexutil.Decode(headers[HeaderWalletSig])
	require.NoError(t, err)
	require.Len(t, sig, 65)

	// Undo the 27/28 v adjustment for recovery.
	sig[64] -= 27

	message := "octorail:" + headers[HeaderWalletTS]
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	require.NoError(t, err)
	assert.Equal(t, testAddress, crypto.PubkeyToAddress(*pub).Hex())
}

func TestAuthHeaders_InvalidKey(t *testing.T) {
	id := &Identity{PrivateKeyHex: "zz", Address: testAddress}

	_, err := AuthHeaders(id)
	require.Error(t, err)
}

func TestSignMessage_Deterministic(t *testing.T) {
	key, err := ParseKey(testPrivateKeyHex)
	require.NoError(t, err)

	a, err := SignMessage(key, "octorail:1700000000000")
	require.NoError(t, err)
	b, err := SignMessage(key, "octorail:1700000000000")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
