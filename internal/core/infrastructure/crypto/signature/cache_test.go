package signature

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

func TestCachedVerifier(t *testing.T) {
	f := newFixture(t)
	store, err := badger.NewMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	c := NewCachedVerifier(New(f.prims), store)
	ctx := context.Background()
	sig := f.edSign(t, []byte("hello"))
	expect := types.VerifyResult{IsValid: true, Crypto: types.SchemeEd25519}

	res, hit, err := c.Verify(ctx, []byte("hello"), sig, f.ed.pub, false)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, expect, res)

	res, hit, err = c.Verify(ctx, []byte("hello"), sig, f.ed.pub, false)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, expect, res)

	// isExpanded 不同视为不同输入
	_, hit, err = c.Verify(ctx, []byte("hello"), sig, f.ed.pub, true)
	require.NoError(t, err)
	assert.False(t, hit)

	res, hit, err = c.Verify(ctx, []byte("hellx"), sig, f.ed.pub, false)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, types.VerifyResult{}, res)

	entries, err := store.PrefixScan(ctx, cacheKeyPrefix)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// 错误输入不缓存
	_, _, err = c.Verify(ctx, []byte("hello"), sig[:10], f.ed.pub, false)
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
	entries, err = store.PrefixScan(ctx, cacheKeyPrefix)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestCachedVerifier_StringInputs(t *testing.T) {
	f := newFixture(t)
	store, err := badger.NewMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	// 非法十六进制按 UTF-8 处理，与 SignatureVerify 一致
	msg := "0xzz"
	sig := hexutil.Encode(f.edSign(t, []byte(msg)))
	pub := hexutil.Encode(f.ed.pub)

	v := New(f.prims)
	direct, err := v.SignatureVerify(msg, sig, pub, false)
	require.NoError(t, err)
	require.True(t, direct.IsValid)

	res, hit, err := NewCachedVerifier(v, store).SignatureVerify(ctx, msg, sig, pub, false)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, direct, res)

	// 使用验证器配置的解码器
	ss58, err := address.Encode(f.ed.pub, 42)
	require.NoError(t, err)
	restricted := New(f.prims, WithAddressDecoder(address.NewDecoderWithPrefix(0)))
	_, _, err = NewCachedVerifier(restricted, store).SignatureVerify(ctx, msg, sig, ss58, false)
	assert.ErrorIs(t, err, address.ErrPrefixMismatch)

	entries, err := store.PrefixScan(ctx, cacheKeyPrefix)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCacheKey_Distinct(t *testing.T) {
	a := cacheKey([]byte("ab"), []byte("c"), nil, false)
	b := cacheKey([]byte("a"), []byte("bc"), nil, false)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cacheKey([]byte("ab"), []byte("c"), nil, false))
}
