package order

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// 事件routing key
const (
	EventOrderSubmitted = "order.submitted"
	EventOrderCompleted = "order.completed"
	EventBookLowStock   = "book.low_stock"
)

// EventPublisher 事件发布接口
// 实现见infrastructure/events(RabbitMQ或空实现)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// OrderSubmittedEvent 购物车提交
type OrderSubmittedEvent struct {
	Username    string    `json:"username"`
	OrderIDs    []uint    `json:"order_ids"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// OrderCompletedEvent 结账完成
type OrderCompletedEvent struct {
	OrderID         uint      `json:"order_id"`
	BookID          uint      `json:"book_id"`
	Username        string    `json:"username"`
	Quantity        int       `json:"quantity"`
	RemainingCopies int       `json:"remaining_copies"`
	CompletedAt     time.Time `json:"completed_at"`
}

// LowStockEvent 结账后库存低于阈值
type LowStockEvent struct {
	BookID    uint `json:"book_id"`
	Remaining int  `json:"remaining"`
	Threshold int  `json:"threshold"`
}

// publish 事件在事务提交之后发布,失败只记日志
func publish(ctx context.Context, publisher EventPublisher, routingKey string, payload interface{}) {
	if err := publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("routing_key", routingKey).Msg("事件发布失败")
	}
}
