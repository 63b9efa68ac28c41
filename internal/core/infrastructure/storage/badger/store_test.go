package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgerconfig "github.com/weisyn/wasmcrypto/internal/config/storage/badger"
	interfaces "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// 测试基本的键值操作
func TestBasicKeyValueOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	key := []byte("test-key")
	value := []byte("test-value")

	exists, err := store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.False(t, exists)

	val, err := store.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set(ctx, key, value))

	exists, err = store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.True(t, exists)

	val, err = store.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, val)

	require.NoError(t, store.Set(ctx, key, []byte("updated-value")))
	val, err = store.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, []byte("updated-value"), val)

	require.NoError(t, store.Delete(ctx, key))
	val, err = store.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestPrefixScan(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("a:1"), []byte("x")))
	require.NoError(t, store.Set(ctx, []byte("a:2"), []byte("y")))
	require.NoError(t, store.Set(ctx, []byte("b:1"), []byte("z")))

	result, err := store.PrefixScan(ctx, []byte("a:"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a:1": []byte("x"), "a:2": []byte("y")}, result)
}

func TestRunInTransaction_Commit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, func(tx interfaces.Transaction) error {
		if err := tx.Set([]byte("k1"), []byte("v1")); err != nil {
			return err
		}
		// 事务内能读到自己的写入
		val, err := tx.Get([]byte("k1"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), val)
		return tx.Set([]byte("k2"), []byte("v2"))
	})
	require.NoError(t, err)

	for k, v := range map[string]string{"k1": "v1", "k2": "v2"} {
		val, err := store.Get(ctx, []byte(k))
		require.NoError(t, err)
		assert.Equal(t, []byte(v), val)
	}
}

func TestRunInTransaction_Rollback(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("keep"), []byte("old")))

	boom := errors.New("boom")
	err := store.RunInTransaction(ctx, func(tx interfaces.Transaction) error {
		require.NoError(t, tx.Set([]byte("keep"), []byte("new")))
		require.NoError(t, tx.Set([]byte("other"), []byte("v")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	val, err := store.Get(ctx, []byte("keep"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), val)

	exists, err := store.Exists(ctx, []byte("other"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClose(t *testing.T) {
	store, err := NewMemory(nil)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Set(context.Background(), []byte("k"), []byte("v")), ErrStoreClosing)
}

func TestNew_OnDisk(t *testing.T) {
	root := t.TempDir()
	cfg := badgerconfig.New(&types.UserStorageConfig{DataRoot: types.StringPtr(root)})
	require.False(t, cfg.IsInMemory())

	store, err := New(cfg, nil)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("k"), []byte("v")))
	require.NoError(t, store.Close())

	reopened, err := New(cfg, nil)
	require.NoError(t, err)
	defer reopened.Close()
	val, err := reopened.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}
