package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb/gormdbtest"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// recordingPublisher 记录发布过的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type fixture struct {
	db        *gorm.DB
	bookRepo  book.Repository
	orderRepo order.Repository
	carts     cart.Store
	publisher *recordingPublisher

	cart      *CartUseCase
	submit    *SubmitCartUseCase
	checkout  *CheckoutUseCase
	mine      *UserOrdersUseCase
	allOrders *AllOrdersUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := gormdbtest.NewDB(t)
	bookRepo := gormdb.NewBookRepository(db)
	orderRepo := gormdb.NewOrderRepository(db)
	userRepo := gormdb.NewUserRepository(db)
	tx := gormdb.NewTxManager(db)
	carts := memory.NewCartStore(100, time.Hour)
	pub := &recordingPublisher{}

	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, userRepo.Create(context.Background(), &user.User{Username: name, Email: name + "@example.com", Password: "pw"}))
	}

	return &fixture{
		db:        db,
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		carts:     carts,
		publisher: pub,
		cart:      NewCartUseCase(carts, bookRepo),
		submit:    NewSubmitCartUseCase(orderRepo, bookRepo, userRepo, carts, tx, pub),
		checkout:  NewCheckoutUseCase(orderRepo, bookRepo, tx, pub, 5),
		mine:      NewUserOrdersUseCase(orderRepo),
		allOrders: NewAllOrdersUseCase(orderRepo),
	}
}

func (f *fixture) addBook(t *testing.T, name string, copies int) uint {
	t.Helper()
	b := &book.Book{Name: name, Author: "Author", Copies: copies}
	require.NoError(t, f.bookRepo.Create(context.Background(), b))
	return b.ID
}

func (f *fixture) copies(t *testing.T, id uint) int {
	t.Helper()
	b, err := f.bookRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return b.Copies
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	all, err := f.allOrders.Execute(context.Background(), "")
	require.NoError(t, err)
	return len(all)
}

func TestSubmitThenCheckout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookA := f.addBook(t, "Dune", 5)

	resp, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 3}})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, order.StatusPending, resp.Orders[0].Status)
	assert.Equal(t, 5, f.copies(t, bookA), "提交不扣减库存")

	out, err := f.checkout.Execute(ctx, resp.Orders[0].OrderID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.RemainingCopies)
	assert.Equal(t, order.StatusCompleted, out.Status)
	assert.True(t, out.LowStock)
	assert.Equal(t, 2, f.copies(t, bookA))

	t.Run("重复结账失败且不重复扣减", func(t *testing.T) {
		_, err := f.checkout.Execute(ctx, resp.Orders[0].OrderID)
		assert.ErrorIs(t, err, order.ErrOrderAlreadyProcessed)
		assert.Equal(t, 2, f.copies(t, bookA))
	})

	t.Run("事件", func(t *testing.T) {
		assert.Equal(t, []string{EventOrderSubmitted, EventOrderCompleted, EventBookLowStock}, f.publisher.keys())
	})
}

func TestSubmit_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookA := f.addBook(t, "Dune", 5)
	bookB := f.addBook(t, "Emma", 2)

	t.Run("单本超出库存", func(t *testing.T) {
		_, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 10}})
		assert.ErrorIs(t, err, order.ErrStockError)
		assert.Contains(t, apperrors.GetAppError(err).Message, "ID 1")
		assert.Zero(t, f.orderCount(t))
	})

	t.Run("后面的条目失败时前面的也不落库", func(t *testing.T) {
		_, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 1, bookB: 3}})
		assert.ErrorIs(t, err, order.ErrStockError)
		assert.Zero(t, f.orderCount(t))
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{999: 1}})
		assert.ErrorIs(t, err, order.ErrStockError)
	})

	t.Run("空购物车与非法数量", func(t *testing.T) {
		_, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{}})
		assert.ErrorIs(t, err, order.ErrEmptyCart)

		_, err = f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 0}})
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
		assert.Zero(t, f.orderCount(t))
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "mallory", Items: cart.Cart{bookA: 1}})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("多本书一次提交,共享提交时间", func(t *testing.T) {
		resp, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookB: 2, bookA: 1}})
		require.NoError(t, err)
		require.Len(t, resp.Orders, 2)
		assert.Equal(t, bookA, resp.Orders[0].BookID, "按图书ID升序")
		assert.Equal(t, resp.Orders[0].OrderTime, resp.Orders[1].OrderTime)
		assert.Equal(t, 3, resp.TotalQuantity)
	})
}

func TestCheckout_OvercommittedPendingOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookA := f.addBook(t, "Dune", 5)

	first, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 3}})
	require.NoError(t, err)
	second, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "bob", Items: cart.Cart{bookA: 3}})
	require.NoError(t, err)

	_, err = f.checkout.Execute(ctx, first.Orders[0].OrderID)
	require.NoError(t, err)

	_, err = f.checkout.Execute(ctx, second.Orders[0].OrderID)
	assert.ErrorIs(t, err, order.ErrStockMismatch)
	assert.Equal(t, 2, f.copies(t, bookA))

	pending, err := f.allOrders.Execute(ctx, "Pending")
	require.NoError(t, err)
	require.Len(t, pending, 1, "失败的结账保持Pending")
	assert.Equal(t, "bob", pending[0].Username)
}

func TestCheckout_ConcurrentExceedingStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookA := f.addBook(t, "Dune", 5)

	var ids []uint
	for _, name := range []string{"alice", "bob"} {
		resp, err := f.submit.Execute(ctx, SubmitCartRequest{Username: name, Items: cart.Cart{bookA: 3}})
		require.NoError(t, err)
		ids = append(ids, resp.Orders[0].OrderID)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, errs[i] = f.checkout.Execute(ctx, id)
		}(i, id)
	}
	wg.Wait()

	succeeded, mismatched := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, order.ErrStockMismatch):
			mismatched++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, mismatched)
	assert.Equal(t, 2, f.copies(t, bookA))
}

func TestCheckout_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkout.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestCheckout_CopiesNeverNegative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookA := f.addBook(t, "Dune", 4)

	var ids []uint
	for i := 0; i < 4; i++ {
		resp, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 2}})
		require.NoError(t, err)
		ids = append(ids, resp.Orders[0].OrderID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, _ = f.checkout.Execute(ctx, id)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 0, f.copies(t, bookA))
	completed, err := f.allOrders.Execute(ctx, "Completed")
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestOrderListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookA := f.addBook(t, "Dune", 5)

	first, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 1}})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := f.submit.Execute(ctx, SubmitCartRequest{Username: "alice", Items: cart.Cart{bookA: 2}})
	require.NoError(t, err)
	_, err = f.submit.Execute(ctx, SubmitCartRequest{Username: "bob", Items: cart.Cart{bookA: 1}})
	require.NoError(t, err)

	mine, err := f.mine.Execute(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.Orders[0].OrderID, mine[0].OrderID, "新订单在前")
	assert.Equal(t, first.Orders[0].OrderID, mine[1].OrderID)
	assert.Equal(t, "Dune", mine[0].BookName)

	_, err = f.allOrders.Execute(ctx, "Shipped")
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bookA := f.addBook(t, "Dune", 3)
	bookB := f.addBook(t, "Emma", 1)
	alice := cart.Session{ID: "s-alice", Username: "alice"}

	t.Run("重复加入累加", func(t *testing.T) {
		_, err := f.cart.AddItem(ctx, alice, bookA, 1)
		require.NoError(t, err)
		view, err := f.cart.AddItem(ctx, alice, bookA, 2)
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 3, view.Items[0].Quantity)
		assert.Equal(t, "Dune", view.Items[0].BookName)
	})

	t.Run("累加后超过库存", func(t *testing.T) {
		_, err := f.cart.AddItem(ctx, alice, bookA, 1)
		assert.ErrorIs(t, err, order.ErrStockError)
	})

	t.Run("缺货图书不能加入", func(t *testing.T) {
		require.NoError(t, f.bookRepo.Update(ctx, &book.Book{ID: bookB, Name: "Emma", Author: "Author", Copies: 0}))
		_, err := f.cart.AddItem(ctx, alice, bookB, 1)
		assert.ErrorIs(t, err, order.ErrStockError)
	})

	t.Run("管理员没有购物车", func(t *testing.T) {
		admin := cart.Session{ID: "s-admin", Username: "library", IsAdmin: true}
		_, err := f.cart.View(ctx, admin)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("提交会话购物车后清空", func(t *testing.T) {
		resp, err := f.submit.SubmitSession(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalQuantity)

		view, err := f.cart.View(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Equal(t, 3, f.copies(t, bookA))
	})

	t.Run("移除", func(t *testing.T) {
		_, err := f.cart.AddItem(ctx, alice, bookA, 1)
		require.NoError(t, err)
		view, err := f.cart.RemoveItem(ctx, alice, bookA)
		require.NoError(t, err)
		assert.Empty(t, view.Items)

		_, err = f.cart.RemoveItem(ctx, alice, bookA)
		assert.ErrorIs(t, err, cart.ErrItemNotInCart)
	})
}
