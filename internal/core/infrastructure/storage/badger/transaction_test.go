package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
)

func TestRunInTransactionCommit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		if err := tx.Set([]byte("k1"), []byte("v1")); err != nil {
			return err
		}
		if err := tx.Set([]byte("k2"), []byte("v2")); err != nil {
			return err
		}
		// 事务内可以读到自己的写入
		v, err := tx.Get([]byte("k1"))
		if err != nil {
			return err
		}
		assert.Equal(t, []byte("v1"), v)
		return tx.Delete([]byte("k2"))
	})
	require.NoError(t, err)

	v, err := store.Get(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	exists, err := store.Exists(ctx, []byte("k2"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunInTransactionRollback(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		require.NoError(t, tx.Set([]byte("k"), []byte("v")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := store.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Nil(t, v, "失败的事务不应留下任何写入")
}

func TestRunInTransactionCancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		return tx.Set([]byte("k"), []byte("v"))
	})
	require.ErrorIs(t, err, context.Canceled)

	v, err := store.Get(context.Background(), []byte("k"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTransactionStates(t *testing.T) {
	store := setupTestStore(t)

	tx := &Transaction{txn: store.db.NewTransaction(true), state: int32(TxActive)}
	assert.True(t, tx.IsActive())

	require.NoError(t, tx.Set([]byte("k"), []byte("v")))
	require.NoError(t, tx.Commit())
	assert.True(t, tx.IsCommitted())
	assert.Error(t, tx.Commit())

	_, err := tx.Get([]byte("k"))
	assert.ErrorIs(t, err, ErrTxClosed)

	tx2 := &Transaction{txn: store.db.NewTransaction(true), state: int32(TxActive)}
	tx2.Discard()
	assert.True(t, tx2.IsDiscarded())
	assert.ErrorIs(t, tx2.Set([]byte("k"), []byte("v")), ErrTxClosed)
}
