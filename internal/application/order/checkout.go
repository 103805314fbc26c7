package order

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/tracing"
)

// CheckoutUseCase 管理员结账
// 教学重点:库存只在这里扣减,并且只扣一次
//
// 并发问题:两个结账同时针对同一本书,各自读到5本、各自需要3本
// 错误实现:先查询、再判断、再UPDATE copies = 5 - 3,两个都成功,库存被扣成-1
//
// 本用例的做法(同一事务):
//  1. 查询订单,非Pending直接失败
//  2. SELECT ... FOR UPDATE锁定图书行(MySQL);SQLite单连接下事务本身串行
//  3. 重新读取册数,不足返回StockMismatch
//  4. 带条件扣减:UPDATE books SET copies = copies - ? WHERE id = ? AND copies - ? >= 0
//  5. 带条件改状态:UPDATE orders SET status = 'Completed' WHERE id = ? AND status = 'Pending'
//
// 第4、5步的条件保证即使锁失效也不会出现负库存或重复扣减
type CheckoutUseCase struct {
	orderRepo         order.Repository
	bookRepo          book.Repository
	txManager         *gormdb.TxManager
	publisher         EventPublisher
	lowStockThreshold int
}

// NewCheckoutUseCase 创建结账用例
func NewCheckoutUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager *gormdb.TxManager,
	publisher EventPublisher,
	lowStockThreshold int,
) *CheckoutUseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = book.DefaultLowStockThreshold
	}
	return &CheckoutUseCase{
		orderRepo:         orderRepo,
		bookRepo:          bookRepo,
		txManager:         txManager,
		publisher:         publisher,
		lowStockThreshold: lowStockThreshold,
	}
}

// CheckoutResponse 结账结果
// LowStock为true时调用方应提示补货
type CheckoutResponse struct {
	OrderID         uint         `json:"order_id"`
	BookID          uint         `json:"book_id"`
	Username        string       `json:"username"`
	Quantity        int          `json:"quantity"`
	Status          order.Status `json:"status"`
	RemainingCopies int          `json:"remaining_copies"`
	LowStock        bool         `json:"low_stock"`
}

// Execute 执行结账
func (uc *CheckoutUseCase) Execute(ctx context.Context, orderID uint) (resp *CheckoutResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "order.Checkout")
	defer func() { tracing.EndSpan(span, err) }()

	var o *order.Order
	var remaining int

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error

		// 1. 订单必须存在且为Pending
		o, err = uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if !o.IsPending() {
			return order.ErrOrderAlreadyProcessed
		}

		// 2. 锁定图书行并重新读取册数
		b, err := uc.bookRepo.LockByID(txCtx, o.BookID)
		if err != nil {
			if errors.Is(err, book.ErrBookNotFound) {
				return order.NewStockMismatch(o.BookID)
			}
			return err
		}
		if !b.CanFulfill(o.Quantity) {
			return order.NewStockMismatch(o.BookID)
		}

		// 3. 带条件扣减
		remaining, err = uc.bookRepo.UpdateStock(txCtx, o.BookID, -o.Quantity)
		if err != nil {
			if errors.Is(err, book.ErrInsufficientStock) {
				return order.NewStockMismatch(o.BookID)
			}
			return err
		}

		// 4. 带条件改状态,失败时整个事务回滚,扣减一并撤销
		if err := uc.orderRepo.MarkCompleted(txCtx, o.ID); err != nil {
			return err
		}
		return o.Complete()
	})
	if err != nil {
		metrics.RecordCheckoutFailure(failureReason(err))
		log.Ctx(ctx).Info().Err(err).Uint("order_id", orderID).Msg("结账失败")
		return nil, err
	}

	lowStock := remaining <= uc.lowStockThreshold
	metrics.RecordCheckout(time.Since(start).Seconds(), lowStock)
	log.Ctx(ctx).Info().
		Uint("order_id", o.ID).
		Uint("book_id", o.BookID).
		Int("quantity", o.Quantity).
		Int("remaining", remaining).
		Msg("结账完成")

	publish(ctx, uc.publisher, EventOrderCompleted, OrderCompletedEvent{
		OrderID:         o.ID,
		BookID:          o.BookID,
		Username:        o.Username,
		Quantity:        o.Quantity,
		RemainingCopies: remaining,
		CompletedAt:     time.Now(),
	})

	if lowStock {
		log.Ctx(ctx).Warn().Uint("book_id", o.BookID).Int("remaining", remaining).Int("threshold", uc.lowStockThreshold).Msg("库存偏低，请及时补货")
		publish(ctx, uc.publisher, EventBookLowStock, LowStockEvent{
			BookID:    o.BookID,
			Remaining: remaining,
			Threshold: uc.lowStockThreshold,
		})
	}

	return &CheckoutResponse{
		OrderID:         o.ID,
		BookID:          o.BookID,
		Username:        o.Username,
		Quantity:        o.Quantity,
		Status:          o.Status,
		RemainingCopies: remaining,
		LowStock:        lowStock,
	}, nil
}

// failureReason 指标标签
func failureReason(err error) string {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, order.ErrOrderAlreadyProcessed):
		return "already_processed"
	case errors.Is(err, order.ErrStockMismatch):
		return "stock_mismatch"
	default:
		return "internal"
	}
}
