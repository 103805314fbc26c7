// Package events 订单与库存事件的发布实现
package events

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

// Publisher 事件发布接口，与应用层的EventPublisher签名一致
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

// NoopPublisher events.enabled=false时使用，丢弃所有事件
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	log.Ctx(ctx).Debug().Str("routing_key", routingKey).Msg("事件发布未启用，已丢弃")
	return nil
}

func (NoopPublisher) Close() error { return nil }

// sender 发布到消息代理的最小接口（*mq.Publisher）
type sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Close() error
}

// BrokerPublisher 经熔断器发布到RabbitMQ
// 设计说明：
// 1. 事件是通知性质，发布失败不影响已提交的业务事务
// 2. broker连续失败后熔断，结账请求不再等待连接超时
type BrokerPublisher struct {
	sender  sender
	breaker *circuitbreaker.CircuitBreaker
}

// NewBrokerPublisher 包装一个已连接的发布者
func NewBrokerPublisher(s sender, breaker *circuitbreaker.CircuitBreaker) *BrokerPublisher {
	breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("事件发布熔断器状态变化")
	})
	breaker.OnResult(func(name string, state circuitbreaker.State, result string) {
		metrics.RecordCircuitBreaker(name, int(state), result)
	})
	return &BrokerPublisher{sender: s, breaker: breaker}
}

// Publish 失败时错误里带上routing key，熔断拒绝仍可用errors.Is识别
func (p *BrokerPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.sender.Publish(ctx, routingKey, payload)
	})
	if err != nil {
		return apperrors.Wrapf(err, "发布事件%s失败", routingKey)
	}
	return nil
}

func (p *BrokerPublisher) Close() error {
	return p.sender.Close()
}

// NewPublisher 根据配置创建发布者
// 启用但连接失败时返回错误，由调用方决定是否退出
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if !cfg.Events.Enabled {
		return NoopPublisher{}, nil
	}

	p, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, cfg.Events.ExchangeType)
	if err != nil {
		return nil, err
	}
	return NewBrokerPublisher(p, circuitbreaker.NewCircuitBreaker("events", circuitbreaker.DefaultConfig())), nil
}
