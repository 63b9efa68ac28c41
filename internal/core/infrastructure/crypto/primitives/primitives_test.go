package primitives

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/bridge"
)

const abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func newFallback(t *testing.T) *Primitives {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	b := bridge.New()
	require.True(t, b.InitAndWait(ctx, nil, nil, nil))
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return New(b)
}

func TestPrimitives_NotReady(t *testing.T) {
	p := New(bridge.New())
	assert.False(t, p.IsReady())
	_, err := p.Sha512(context.Background(), []byte("abc"))
	assert.ErrorIs(t, err, bridge.ErrNotReady)
}

func TestPrimitives_Hashes(t *testing.T) {
	p := newFallback(t)
	ctx := context.Background()

	out, err := p.Blake2b(ctx, []byte("abc"), nil, 32)
	require.NoError(t, err)
	assert.Equal(t, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319", hex.EncodeToString(out))

	out, err = p.Keccak256(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(out))

	out, err = p.Sha512(ctx, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t,
		"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		hex.EncodeToString(out))

	out, err = p.Twox(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, out, 16)
	assert.Equal(t, "99e9d85137db46ef", hex.EncodeToString(out[:8]))

	keyed, err := p.Blake2b(ctx, []byte("abc"), []byte("key"), 32)
	require.NoError(t, err)
	assert.NotEqual(t, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319", hex.EncodeToString(keyed))

	_, err = p.Blake2b(ctx, []byte("abc"), nil, 65)
	assert.Error(t, err)
}

func TestPrimitives_KDF(t *testing.T) {
	p := newFallback(t)
	ctx := context.Background()

	a, err := p.Pbkdf2(ctx, []byte("password"), []byte("salt"), 2)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := p.Pbkdf2(ctx, []byte("password"), []byte("salt"), 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	s, err := p.Scrypt(ctx, []byte("password"), []byte("salt"), 10, 8, 1)
	require.NoError(t, err)
	assert.Len(t, s, 64)
}

func TestPrimitives_Ed25519(t *testing.T) {
	p := newFallback(t)
	ctx := context.Background()

	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pair, err := p.EdFromSeed(ctx, seed)
	require.NoError(t, err)
	require.Len(t, pair, 64)
	assert.Equal(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a", hex.EncodeToString(pair[32:]))

	sig, err := p.EdSign(ctx, pair[32:], pair[:32], nil)
	require.NoError(t, err)
	assert.Equal(t,
		"e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
		hex.EncodeToString(sig))

	ok, err := p.EdVerify(ctx, sig, nil, pair[32:])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.EdVerify(ctx, sig, []byte("x"), pair[32:])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrimitives_Sr25519(t *testing.T) {
	p := newFallback(t)
	ctx := context.Background()

	pair, err := p.SrFromSeed(ctx, make([]byte, 32))
	require.NoError(t, err)
	require.Len(t, pair, 64)

	msg := []byte("message to sign")
	sig, err := p.SrSign(ctx, pair[32:], pair[:32], msg)
	require.NoError(t, err)
	require.Len(t, sig, 64)

	ok, err := p.SrVerify(ctx, sig, msg, pair[32:])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.SrVerify(ctx, sig, []byte("other"), pair[32:])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrimitives_Secp256k1(t *testing.T) {
	p := newFallback(t)
	ctx := context.Background()

	seed := mustHex(t, "0000000000000000000000000000000000000000000000000000000000000001")
	pair, err := p.SecpFromSeed(ctx, seed)
	require.NoError(t, err)
	require.Len(t, pair, 65)
	// 私钥 1 对应生成元 G
	assert.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", hex.EncodeToString(pair[32:]))

	hash, err := p.Blake2b(ctx, []byte("hello"), nil, 32)
	require.NoError(t, err)

	sig, err := p.SecpSign(ctx, hash, pair[:32])
	require.NoError(t, err)
	require.Len(t, sig, 65)

	pub, err := p.SecpRecover(ctx, hash, sig[:64], uint32(sig[64]))
	require.NoError(t, err)
	assert.Equal(t, pair[32:], pub)

	expanded, err := p.SecpExpand(ctx, pub)
	require.NoError(t, err)
	require.Len(t, expanded, 65)

	compressed, err := p.SecpCompress(ctx, expanded)
	require.NoError(t, err)
	assert.Equal(t, pub, compressed)

	_, err = p.SecpRecover(ctx, hash, sig[:64], 9)
	assert.Error(t, err)
}

func TestPrimitives_Bip39(t *testing.T) {
	p := newFallback(t)
	ctx := context.Background()

	ok, err := p.Bip39Validate(ctx, abandonPhrase)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Bip39Validate(ctx, "abandon abandon")
	require.NoError(t, err)
	assert.False(t, ok)

	entropy, err := p.Bip39ToEntropy(ctx, abandonPhrase)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), entropy)

	seed, err := p.Bip39ToSeed(ctx, abandonPhrase, "TREZOR")
	require.NoError(t, err)
	assert.Equal(t, "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e5349553", hex.EncodeToString(seed))

	mini, err := p.Bip39ToMiniSecret(ctx, abandonPhrase, "")
	require.NoError(t, err)
	assert.Len(t, mini, 32)

	phrase, err := p.Bip39Generate(ctx, 24)
	require.NoError(t, err)
	ok, err = p.Bip39Validate(ctx, phrase)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPrimitives_RepeatedCallsDoNotLeak(t *testing.T) {
	p := newFallback(t)
	ctx := context.Background()
	payload := make([]byte, 32*1024)

	// 每次调用结束都释放临时分配，远超内存上限的累计数据量也能完成
	for i := 0; i < 2000; i++ {
		_, err := p.Sha512(ctx, payload)
		require.NoError(t, err)
	}
}
