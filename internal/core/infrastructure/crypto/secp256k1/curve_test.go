package secp256k1

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, seed, hash []byte) ([]byte, []byte) {
	t.Helper()
	priv, pub := btcec.PrivKeyFromBytes(seed)
	compact := btcec_ecdsa.SignCompact(priv, hash, true)
	sig := append(append([]byte{}, compact[1:]...), compact[0]-31)
	return sig, pub.SerializeCompressed()
}

func TestRecoverPubkey(t *testing.T) {
	c := NewCurve()
	seed := make([]byte, 32)
	seed[31] = 9
	hash := make([]byte, 32)
	hash[0] = 0xab

	sig, pub := sign(t, seed, hash)
	got, err := c.RecoverPubkey(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, pub, got)

	_, err = c.RecoverPubkey(hash, sig[:64])
	var lenErr *ErrInvalidSignatureLength
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 64, lenErr.Got)

	_, err = c.RecoverPubkey(hash[:31], sig)
	var hashErr *ErrInvalidHashLength
	assert.ErrorAs(t, err, &hashErr)

	bad := append([]byte{}, sig...)
	bad[64] = 7
	_, err = c.RecoverPubkey(hash, bad)
	var recErr *ErrRecoverPubkeyFailed
	assert.ErrorAs(t, err, &recErr)
}

func TestExpandCompress(t *testing.T) {
	c := NewCurve()
	g, err := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)

	expanded, err := c.ExpandPubkey(g)
	require.NoError(t, err)
	require.Len(t, expanded, 65)
	assert.Equal(t, byte(0x04), expanded[0])

	compressed, err := c.CompressPubkey(expanded)
	require.NoError(t, err)
	assert.Equal(t, g, compressed)

	_, err = c.ExpandPubkey([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestEthereumAddress(t *testing.T) {
	c := NewCurve()
	// 私钥 1 的以太坊地址
	g, err := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)

	addr, err := c.EthereumAddress(g)
	require.NoError(t, err)
	assert.Equal(t, "7e5f4552091a69125d5dfcb7b8c2659029395bdf", hex.EncodeToString(addr))
}
