package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// CreateBatch 批量插入订单,回填ID
	CreateBatch(ctx context.Context, orders []*Order) error

	// FindByID 根据ID查找订单
	FindByID(ctx context.Context, id uint) (*Order, error)

	// MarkCompleted 仅当订单仍为Pending时改为Completed
	// 状态已变化返回ErrOrderAlreadyProcessed
	MarkCompleted(ctx context.Context, id uint) error

	// ListByUsername 某用户的订单,新订单在前
	ListByUsername(ctx context.Context, username string) ([]*View, error)

	// ListAll 全部订单,status为空表示不过滤,新订单在前
	ListAll(ctx context.Context, status Status) ([]*View, error)

	// CountPendingByBook 引用某图书的待处理订单数
	CountPendingByBook(ctx context.Context, bookID uint) (int64, error)
}
