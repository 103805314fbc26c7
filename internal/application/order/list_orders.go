package order

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/order"
)

// UserOrdersUseCase 我的订单,新订单在前
type UserOrdersUseCase struct {
	orderRepo order.Repository
}

// NewUserOrdersUseCase 创建用例
func NewUserOrdersUseCase(orderRepo order.Repository) *UserOrdersUseCase {
	return &UserOrdersUseCase{orderRepo: orderRepo}
}

// Execute 查询某用户的订单
func (uc *UserOrdersUseCase) Execute(ctx context.Context, username string) ([]*order.View, error) {
	return uc.orderRepo.ListByUsername(ctx, username)
}

// AllOrdersUseCase 全部订单(管理员)
// 管理后台按状态分成"待处理"和"已完成"两个列表
type AllOrdersUseCase struct {
	orderRepo order.Repository
}

// NewAllOrdersUseCase 创建用例
func NewAllOrdersUseCase(orderRepo order.Repository) *AllOrdersUseCase {
	return &AllOrdersUseCase{orderRepo: orderRepo}
}

// Execute status为空返回全部,否则只能是Pending或Completed
func (uc *AllOrdersUseCase) Execute(ctx context.Context, status string) ([]*order.View, error) {
	s := order.Status(status)
	if status != "" && !s.Valid() {
		return nil, order.ErrInvalidStatus
	}
	return uc.orderRepo.ListAll(ctx, s)
}
