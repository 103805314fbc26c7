package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
)

// CartStore 购物车存储
// Key设计：cart:{session_id} 为Hash，field是图书ID，value是数量
// 过期时间与Access Token一致，会话失效后购物车自动清理
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ cart.Store = (*CartStore)(nil)

// NewCartStore 创建购物车存储
func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *CartStore) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, cacheError(err, "读取购物车失败")
	}

	c := make(cart.Cart, len(fields))
	for field, value := range fields {
		bookID, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil || qty < 1 {
			continue
		}
		c[uint(bookID)] = qty
	}
	return c, nil
}

// Save 整体覆盖
// 学习要点：DEL + HSET + EXPIRE放在同一个事务管道里，避免读到一半写入的购物车
func (s *CartStore) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	key := cartKey(sessionID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(c) == 0 {
			return nil
		}
		values := make(map[string]interface{}, len(c))
		for bookID, qty := range c {
			values[strconv.FormatUint(uint64(bookID), 10)] = qty
		}
		pipe.HSet(ctx, key, values)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return cacheError(err, "保存购物车失败")
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return cacheError(err, "清空购物车失败")
	}
	return nil
}
