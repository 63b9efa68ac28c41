package mnemonic

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
)

const (
	abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	// BIP39 官方向量，口令 TREZOR
	trezorSeed = "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
)

func newReady(t *testing.T) *Service {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	b := bridge.New()
	require.True(t, b.InitAndWait(ctx, nil, nil, nil))
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return NewService(primitives.New(b))
}

func TestToLegacySeed(t *testing.T) {
	ctx := context.Background()

	for name, svc := range map[string]*Service{
		"ready":     newReady(t),
		"not ready": NewService(primitives.New(bridge.New())),
		"no prims":  NewService(nil),
	} {
		t.Run(name, func(t *testing.T) {
			seed, err := svc.ToLegacySeed(ctx, abandonPhrase, "TREZOR", false, 0)
			require.NoError(t, err)
			assert.Equal(t, trezorSeed, hex.EncodeToString(seed))

			seed, err = svc.ToLegacySeed(ctx, abandonPhrase, "TREZOR", false, 64)
			require.NoError(t, err)
			assert.Equal(t, trezorSeed, hex.EncodeToString(seed))

			seed, err = svc.ToLegacySeed(ctx, abandonPhrase, "TREZOR", false, 32)
			require.NoError(t, err)
			assert.Equal(t, trezorSeed[:64], hex.EncodeToString(seed))

			seed, err = svc.ToLegacySeed(ctx, abandonPhrase, "TREZOR", true, 32)
			require.NoError(t, err)
			assert.Equal(t, trezorSeed[:64], hex.EncodeToString(seed))
		})
	}
}

func TestToLegacySeed_Errors(t *testing.T) {
	svc := newReady(t)
	ctx := context.Background()

	_, err := svc.ToLegacySeed(ctx, abandonPhrase, "", false, 48)
	assert.ErrorIs(t, err, ErrInvalidByteLength)

	_, err = svc.ToLegacySeed(ctx, "abandon abandon", "", false, 32)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)

	bad := strings.Replace(abandonPhrase, "about", "abandon", 1)
	_, err = svc.ToLegacySeed(ctx, bad, "", false, 64)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	for _, svc := range []*Service{newReady(t), NewService(nil)} {
		for _, words := range []int{12, 24} {
			phrase, err := svc.Generate(ctx, words)
			require.NoError(t, err)
			assert.Len(t, strings.Fields(phrase), words)
			assert.True(t, svc.Validate(ctx, phrase))
		}
	}

	_, err := NewService(nil).Generate(ctx, 13)
	assert.Error(t, err)
}

func TestToMiniSecret(t *testing.T) {
	svc := newReady(t)
	ctx := context.Background()

	a, err := svc.ToMiniSecret(ctx, abandonPhrase, "")
	require.NoError(t, err)
	require.Len(t, a, 32)

	b, err := svc.ToMiniSecret(ctx, abandonPhrase, "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = NewService(nil).ToMiniSecret(ctx, abandonPhrase, "")
	assert.Error(t, err)
}
