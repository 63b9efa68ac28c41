package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/wasmcrypto/pkg/types"
)

func TestNew_WaitReady(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := New(ctx, WithAppConfig(&types.AppConfig{}), WithWaitReady(), WithStorage())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Stop(context.Background())) }()

	s := a.Services()
	assert.True(t, s.Bridge.IsReady())
	assert.Equal(t, types.BackendFallback, s.Bridge.Kind())
	require.NotNil(t, s.Store)
	assert.Equal(t, "wasmcrypto", s.Provider.GetAppName())

	digest, err := s.Hash.Blake2b256(ctx, []byte("abc"))
	require.NoError(t, err)
	assert.Len(t, digest, 32)
}

func TestNew_WithoutStorage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := New(ctx, WithAppConfig(&types.AppConfig{AppName: types.StringPtr("test")}))
	require.NoError(t, err)
	defer a.Stop(context.Background())

	assert.Nil(t, a.Services().Store)
	assert.Equal(t, "test", a.Services().Provider.GetAppName())
}

func TestNew_MissingConfigFile(t *testing.T) {
	_, err := New(context.Background(), WithConfigFile("/nonexistent/config.json"))
	assert.Error(t, err)
}
