package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/wasmcrypto/pkg/types"
)

// TestGetBridge 测试 GetBridge() 方法
func TestGetBridge(t *testing.T) {
	t.Run("未配置时使用默认值", func(t *testing.T) {
		provider := NewProvider(&types.AppConfig{})
		opts := provider.GetBridge()
		require.NotNil(t, opts)
		assert.Equal(t, "", opts.WasmPath)
		assert.Equal(t, uint32(8), opts.ResultPointer)
		assert.Equal(t, uint16(42), opts.SS58Prefix)
		assert.False(t, opts.StrictSelector)
		assert.Greater(t, opts.BatchWorkers, 0)
	})

	t.Run("用户配置覆盖默认值", func(t *testing.T) {
		cfg := &types.AppConfig{
			Bridge: &types.UserBridgeConfig{
				WasmPath:       types.StringPtr("/opt/crypto.wasm"),
				LoadTimeout:    types.StringPtr("3s"),
				StrictSelector: types.BoolPtr(true),
				BatchWorkers:   types.IntPtr(2),
			},
		}
		opts := NewProvider(cfg).GetBridge()
		assert.Equal(t, "/opt/crypto.wasm", opts.WasmPath)
		assert.Equal(t, 3*time.Second, opts.LoadTimeout)
		assert.True(t, opts.StrictSelector)
		assert.Equal(t, 2, opts.BatchWorkers)
	})

	t.Run("非法值保留默认", func(t *testing.T) {
		cfg := &types.AppConfig{
			Bridge: &types.UserBridgeConfig{
				LoadTimeout:      types.StringPtr("soon"),
				MemoryLimitPages: types.Uint32Ptr(0),
				BatchWorkers:     types.IntPtr(-1),
			},
		}
		opts := NewProvider(cfg).GetBridge()
		assert.Equal(t, 10*time.Second, opts.LoadTimeout)
		assert.Equal(t, uint32(256), opts.MemoryLimitPages)
		assert.Greater(t, opts.BatchWorkers, 0)
	})
}

// TestGetBadger 测试 GetBadger() 方法
func TestGetBadger(t *testing.T) {
	t.Run("默认内存模式", func(t *testing.T) {
		opts := NewProvider(nil).GetBadger()
		assert.True(t, opts.InMemory)
		assert.Empty(t, opts.Path)
	})

	t.Run("配置 data_root 后落盘", func(t *testing.T) {
		root := t.TempDir()
		cfg := &types.AppConfig{Storage: &types.UserStorageConfig{DataRoot: types.StringPtr(root)}}
		opts := NewProvider(cfg).GetBadger()
		assert.False(t, opts.InMemory)
		assert.Equal(t, filepath.Join(root, "badger"), opts.Path)
	})
}

// TestGetAppName 测试 GetAppName() 方法
func TestGetAppName(t *testing.T) {
	assert.Equal(t, "wasmcrypto", NewProvider(nil).GetAppName())
	assert.Equal(t, "demo", NewProvider(&types.AppConfig{AppName: types.StringPtr("demo")}).GetAppName())
}

// TestLoad 测试配置文件与环境变量加载
func TestLoad(t *testing.T) {
	t.Run("读取 JSON 文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		content := `{"app_name":"node-a","log":{"level":"debug"},"bridge":{"wasm_path":"a.wasm","strict_selector":true,"ss58_prefix":0}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Bridge)
		assert.Equal(t, "node-a", *cfg.AppName)
		assert.Equal(t, "debug", *cfg.Log.Level)
		assert.Equal(t, "a.wasm", *cfg.Bridge.WasmPath)
		assert.True(t, *cfg.Bridge.StrictSelector)
		assert.Equal(t, uint16(0), *cfg.Bridge.SS58Prefix)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("WASMCRYPTO_BRIDGE_WASM_PATH", "env.wasm")
		t.Setenv("WASMCRYPTO_BRIDGE_BATCH_WORKERS", "3")

		cfg, err := Load("")
		require.NoError(t, err)
		require.NotNil(t, cfg.Bridge)
		assert.Equal(t, "env.wasm", *cfg.Bridge.WasmPath)
		assert.Equal(t, 3, *cfg.Bridge.BatchWorkers)

		opts := NewProvider(cfg).GetBridge()
		assert.Equal(t, "env.wasm", opts.WasmPath)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
