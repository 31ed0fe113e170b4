package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgerconfig "github.com/weisyn/hellocontract/internal/config/storage/badger"
)

// setupTestStore 在临时目录中打开存储
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := badgerconfig.NewFromOptions(&badgerconfig.BadgerOptions{
		Path:       t.TempDir(),
		SyncWrites: false,
	})
	store, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBasicOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	key := []byte("test-key")
	value := []byte("test-value")

	t.Run("写入并读取", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, value))
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, got)

		exists, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)

		exists, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestPrefixScan(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("tree/a"), []byte("1")))
	require.NoError(t, store.Set(ctx, []byte("tree/b"), []byte("2")))
	require.NoError(t, store.Set(ctx, []byte("other/c"), []byte("3")))

	result, err := store.PrefixScan(ctx, []byte("tree/"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"tree/a": []byte("1"),
		"tree/b": []byte("2"),
	}, result)
}

func TestInMemoryStore(t *testing.T) {
	store, err := New(badgerconfig.NewInMemory(), nil)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("k"), []byte("v")))
	got, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestWritesRejectedAfterClose(t *testing.T) {
	store, err := New(badgerconfig.NewInMemory(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Set(context.Background(), []byte("k"), []byte("v")), ErrStoreClosing)
}

func TestMissingPath(t *testing.T) {
	_, err := New(badgerconfig.NewFromOptions(&badgerconfig.BadgerOptions{}), nil)
	assert.Error(t, err)
}
