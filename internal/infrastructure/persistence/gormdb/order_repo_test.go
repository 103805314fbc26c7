package gormdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-lite/internal/domain/order"
)

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	books := seedBooks(t, NewBookRepository(db), 5, 5)
	repo := NewOrderRepository(db)

	first := time.Now().Add(-time.Minute)
	older := []*order.Order{
		{BookID: books[0].ID, Username: "alice", Quantity: 1, CreatedAt: first, Status: order.StatusPending},
	}
	require.NoError(t, repo.CreateBatch(ctx, older))

	batch := []*order.Order{
		{BookID: books[0].ID, Username: "alice", Quantity: 2, CreatedAt: time.Now(), Status: order.StatusPending},
		{BookID: books[1].ID, Username: "bob", Quantity: 3, CreatedAt: time.Now(), Status: order.StatusPending},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	require.NotZero(t, batch[1].ID)

	t.Run("按用户查询新订单在前", func(t *testing.T) {
		views, err := repo.ListByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, batch[0].ID, views[0].OrderID)
		assert.Equal(t, older[0].ID, views[1].OrderID)
		assert.Equal(t, "Book", views[0].BookName)
	})

	t.Run("条件更新状态只成功一次", func(t *testing.T) {
		require.NoError(t, repo.MarkCompleted(ctx, batch[1].ID))
		assert.ErrorIs(t, repo.MarkCompleted(ctx, batch[1].ID), order.ErrOrderAlreadyProcessed)

		got, err := repo.FindByID(ctx, batch[1].ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, got.Status)
	})

	t.Run("按状态过滤", func(t *testing.T) {
		pending, err := repo.ListAll(ctx, order.StatusPending)
		require.NoError(t, err)
		assert.Len(t, pending, 2)

		all, err := repo.ListAll(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		n, err := repo.CountPendingByBook(ctx, books[0].ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("不存在的订单", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestTxManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	books := seedBooks(t, NewBookRepository(db), 5)
	repo := NewOrderRepository(db)
	tx := NewTxManager(db)

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := repo.CreateBatch(ctx, []*order.Order{
			{BookID: books[0].ID, Username: "alice", Quantity: 1, CreatedAt: time.Now(), Status: order.StatusPending},
		}); err != nil {
			return err
		}
		return order.ErrEmptyCart
	})
	assert.ErrorIs(t, err, order.ErrEmptyCart)

	all, err := repo.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}
