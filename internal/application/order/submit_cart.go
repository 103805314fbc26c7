package order

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/tracing"
)

// SubmitCartUseCase 提交购物车
// 教学要点:提交只做"乐观"的库存预检,不扣减库存
//
// 库存被检查两次:
//  1. 提交时:拒绝明显不可能满足的购物车(本用例)
//  2. 结账时:权威检查并扣减(CheckoutUseCase)
//
// 多个用户可以对同一本书提交待处理订单,总量超过库存也允许,
// 超出的部分会在结账时以库存不符失败。
type SubmitCartUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	userRepo  user.Repository
	carts     cart.Store
	txManager *gormdb.TxManager
	publisher EventPublisher
}

// NewSubmitCartUseCase 创建提交用例
func NewSubmitCartUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	carts cart.Store,
	txManager *gormdb.TxManager,
	publisher EventPublisher,
) *SubmitCartUseCase {
	return &SubmitCartUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		carts:     carts,
		txManager: txManager,
		publisher: publisher,
	}
}

// SubmitCartRequest 提交请求
type SubmitCartRequest struct {
	Username string
	Items    cart.Cart // 图书ID → 数量
}

// SubmitCartResponse 提交结果
type SubmitCartResponse struct {
	Orders        []*order.View `json:"orders"`
	TotalQuantity int           `json:"total_quantity"`
}

// Execute 全部成功或全部失败
//
// 流程(同一事务):
//  1. 按图书ID升序校验每一行:图书存在且copies >= quantity,否则StockError
//  2. 全部通过后批量插入Pending订单,共享同一提交时间
//
// 任何一步失败都回滚,不会留下部分订单;books.copies不变
func (uc *SubmitCartUseCase) Execute(ctx context.Context, req SubmitCartRequest) (resp *SubmitCartResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "order.SubmitCart")
	defer func() { tracing.EndSpan(span, err) }()

	if len(req.Items) == 0 {
		return nil, order.ErrEmptyCart
	}

	entries := req.Items.Entries()
	submittedAt := time.Now()
	orders := make([]*order.Order, 0, len(entries))

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.userRepo.FindByUsername(txCtx, req.Username); err != nil {
			return err
		}

		// 1. 先校验全部条目
		for _, e := range entries {
			o, err := order.NewPendingOrder(e.BookID, req.Username, e.Quantity, submittedAt)
			if err != nil {
				return err
			}

			b, err := uc.bookRepo.FindByID(txCtx, e.BookID)
			if err != nil {
				if errors.Is(err, book.ErrBookNotFound) {
					return order.NewStockError(e.BookID)
				}
				return err
			}
			if !b.CanFulfill(e.Quantity) {
				return order.NewStockError(e.BookID)
			}
			orders = append(orders, o)
		}

		// 2. 再批量插入
		return uc.orderRepo.CreateBatch(txCtx, orders)
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(orders))
	views := make([]*order.View, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		views[i] = &order.View{
			OrderID:   o.ID,
			Username:  o.Username,
			BookID:    o.BookID,
			Quantity:  o.Quantity,
			Status:    o.Status,
			OrderTime: o.CreatedAt,
		}
	}

	metrics.RecordOrdersSubmitted(len(orders))
	log.Ctx(ctx).Info().Str("username", req.Username).Uints("order_ids", ids).Msg("购物车已提交")
	publish(ctx, uc.publisher, EventOrderSubmitted, OrderSubmittedEvent{
		Username:    req.Username,
		OrderIDs:    ids,
		SubmittedAt: submittedAt,
	})

	return &SubmitCartResponse{Orders: views, TotalQuantity: req.Items.TotalQuantity()}, nil
}

// SubmitSession 提交当前会话的购物车,成功后清空
func (uc *SubmitCartUseCase) SubmitSession(ctx context.Context, session cart.Session) (*SubmitCartResponse, error) {
	if session.IsAdmin {
		return nil, apperrors.ErrForbidden
	}

	c, err := uc.carts.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	resp, err := uc.Execute(ctx, SubmitCartRequest{Username: session.Username, Items: c})
	if err != nil {
		return nil, err
	}

	// 订单已落库,清空失败只影响购物车显示
	if err := uc.carts.Clear(ctx, session.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("session_id", session.ID).Msg("清空购物车失败")
	}
	return resp, nil
}
