package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
)

// TokenBlacklist Token黑名单
// Key设计：blacklist:{session_id}，过期时间等于Access Token有效期，
// Token自然过期后黑名单记录也随之删除
type TokenBlacklist struct {
	client *redis.Client
	ttl    time.Duration
}

var _ cart.TokenBlacklist = (*TokenBlacklist)(nil)

// NewTokenBlacklist 创建Token黑名单
func NewTokenBlacklist(client *redis.Client, ttl time.Duration) *TokenBlacklist {
	return &TokenBlacklist{client: client, ttl: ttl}
}

func blacklistKey(sessionID string) string {
	return fmt.Sprintf("blacklist:%s", sessionID)
}

func (b *TokenBlacklist) Revoke(ctx context.Context, sessionID string) error {
	if err := b.client.Set(ctx, blacklistKey(sessionID), "revoked", b.ttl).Err(); err != nil {
		return cacheError(err, "添加Token到黑名单失败")
	}
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistKey(sessionID)).Result()
	if err != nil {
		return false, cacheError(err, "检查黑名单失败")
	}
	return exists > 0, nil
}
