package gormdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

func seedBooks(t *testing.T, repo book.Repository, copies ...int) []*book.Book {
	t.Helper()
	books := make([]*book.Book, len(copies))
	for i, c := range copies {
		b := &book.Book{Name: "Book", Author: "Author", Copies: c}
		require.NoError(t, repo.Create(context.Background(), b))
		books[i] = b
	}
	return books
}

func TestBookRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(newTestDB(t))

	b := &book.Book{Name: "Dune", Author: "Frank Herbert", Copies: 4}
	require.NoError(t, repo.Create(ctx, b))
	require.NotZero(t, b.ID)

	t.Run("查询", func(t *testing.T) {
		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)

		_, err = repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("更新", func(t *testing.T) {
		b.Name, b.Copies = "Dune Messiah", 0
		require.NoError(t, repo.Update(ctx, b))

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", got.Name)
		assert.Equal(t, 0, got.Copies)
	})

	t.Run("软删除后查询不到", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, b.ID))

		_, err := repo.FindByID(ctx, b.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, b.ID), book.ErrBookNotFound)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestBookRepository_StockQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(newTestDB(t))
	books := seedBooks(t, repo, 0, 1, 5, 6, 0, 3)

	low, err := repo.ListLowStock(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []uint{books[1].ID, books[2].ID, books[5].ID}, bookIDs(low))

	out, err := repo.ListOutOfStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{books[0].ID, books[4].ID}, bookIDs(out))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
	assert.Equal(t, books[0].ID, all[0].ID, "按插入顺序返回")
}

func TestBookRepository_UpdateStock(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(newTestDB(t))
	b := seedBooks(t, repo, 5)[0]

	remaining, err := repo.UpdateStock(ctx, b.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	remaining, err = repo.UpdateStock(ctx, b.ID, -3)
	assert.ErrorIs(t, err, book.ErrInsufficientStock)
	assert.Equal(t, 2, remaining, "库存不足时不修改")

	_, err = repo.UpdateStock(ctx, 999, -1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	locked, err := repo.LockByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, locked.Copies)
}

func bookIDs(books []*book.Book) []uint {
	ids := make([]uint, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return ids
}
