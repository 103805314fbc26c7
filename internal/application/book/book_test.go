package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb/gormdbtest"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

type fixture struct {
	add       *AddBookUseCase
	list      *ListBooksUseCase
	get       *GetBookUseCase
	update    *UpdateBookUseCase
	del       *DeleteBookUseCase
	lowStock  *LowStockUseCase
	outStock  *OutOfStockUseCase
	orderRepo order.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := gormdbtest.NewDB(t)
	orderRepo := gormdb.NewOrderRepository(db)
	svc := book.NewService(gormdb.NewBookRepository(db), orderRepo, 5)

	return &fixture{
		add:       NewAddBookUseCase(svc),
		list:      NewListBooksUseCase(svc),
		get:       NewGetBookUseCase(svc),
		update:    NewUpdateBookUseCase(svc),
		del:       NewDeleteBookUseCase(svc, gormdb.NewTxManager(db)),
		lowStock:  NewLowStockUseCase(svc, 5),
		outStock:  NewOutOfStockUseCase(svc),
		orderRepo: orderRepo,
	}
}

func (f *fixture) mustAdd(t *testing.T, name string, copies int) *BookView {
	t.Helper()
	b, err := f.add.Execute(context.Background(), AddBookRequest{Name: name, Author: "Author", Copies: copies})
	require.NoError(t, err)
	return b
}

func TestAddBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b := f.mustAdd(t, "Dune", 3)
	assert.NotZero(t, b.ID)
	assert.Equal(t, "3", b.Availability)

	_, err := f.add.Execute(ctx, AddBookRequest{Name: "Dune", Author: "Frank Herbert", Copies: 0})
	assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))

	_, err = f.add.Execute(ctx, AddBookRequest{Name: "", Author: "Frank Herbert", Copies: 1})
	assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))

	all, err := f.list.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.mustAdd(t, "Dune", 3)

	updated, err := f.update.Execute(ctx, UpdateBookRequest{ID: b.ID, Name: "Dune", Author: "F. Herbert", Copies: 0})
	require.NoError(t, err)
	assert.Equal(t, book.OutOfStockLabel, updated.Availability)

	got, err := f.get.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "F. Herbert", got.Author)

	_, err = f.update.Execute(ctx, UpdateBookRequest{ID: b.ID, Name: "Dune", Author: "F. Herbert", Copies: -1})
	assert.ErrorIs(t, err, book.ErrInvalidCopies)

	_, err = f.update.Execute(ctx, UpdateBookRequest{ID: 999, Name: "X", Author: "Y", Copies: 1})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestStockReports_ExactSets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	copies := []int{1, 5, 6, 2, 9}
	ids := make([]uint, len(copies))
	for i, c := range copies {
		ids[i] = f.mustAdd(t, "Book", c).ID
	}
	// 0册只能通过修改得到
	_, err := f.update.Execute(ctx, UpdateBookRequest{ID: ids[4], Name: "Book", Author: "Author", Copies: 0})
	require.NoError(t, err)

	low, err := f.lowStock.Execute(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, low.Threshold)
	assert.Equal(t, 3, low.AlertCount)
	assert.Equal(t, []uint{ids[0], ids[1], ids[3]}, viewIDs(low.Books))

	custom, err := f.lowStock.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[0]}, viewIDs(custom.Books))

	out, err := f.outStock.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[4]}, viewIDs(out.Books))
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.mustAdd(t, "Dune", 3)

	pending := &order.Order{BookID: b.ID, Username: "alice", Quantity: 1, CreatedAt: time.Now(), Status: order.StatusPending}
	require.NoError(t, f.orderRepo.CreateBatch(ctx, []*order.Order{pending}))

	t.Run("有待处理订单时拒绝", func(t *testing.T) {
		assert.ErrorIs(t, f.del.Execute(ctx, b.ID), book.ErrBookInUse)
		_, err := f.get.Execute(ctx, b.ID)
		assert.NoError(t, err)
	})

	t.Run("订单完成后软删除,历史订单仍显示书名", func(t *testing.T) {
		require.NoError(t, f.orderRepo.MarkCompleted(ctx, pending.ID))
		require.NoError(t, f.del.Execute(ctx, b.ID))

		_, err := f.get.Execute(ctx, b.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		views, err := f.orderRepo.ListByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Dune", views[0].BookName)
	})

	t.Run("不存在", func(t *testing.T) {
		assert.ErrorIs(t, f.del.Execute(ctx, 999), book.ErrBookNotFound)
	})
}

func viewIDs(views []BookView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}
