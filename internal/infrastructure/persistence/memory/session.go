// Package memory 未启用Redis时的进程内会话存储
//
// 购物车和Token黑名单都放在带过期时间的LRU里：
// 容量满时淘汰最久未使用的会话，过期时间与Access Token一致。
// 进程重启后全部丢失，多实例部署请启用Redis。
package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
)

// CartStore 进程内购物车存储
type CartStore struct {
	carts *expirable.LRU[string, cart.Cart]
}

var _ cart.Store = (*CartStore)(nil)

// NewCartStore capacity<=0时不限容量
func NewCartStore(capacity int, ttl time.Duration) *CartStore {
	return &CartStore{carts: expirable.NewLRU[string, cart.Cart](capacity, nil, ttl)}
}

// Get 返回副本，调用方修改后需要Save
func (s *CartStore) Get(_ context.Context, sessionID string) (cart.Cart, error) {
	stored, ok := s.carts.Get(sessionID)
	if !ok {
		return cart.Cart{}, nil
	}
	return clone(stored), nil
}

func (s *CartStore) Save(_ context.Context, sessionID string, c cart.Cart) error {
	if len(c) == 0 {
		s.carts.Remove(sessionID)
		return nil
	}
	s.carts.Add(sessionID, clone(c))
	return nil
}

func (s *CartStore) Clear(_ context.Context, sessionID string) error {
	s.carts.Remove(sessionID)
	return nil
}

func clone(c cart.Cart) cart.Cart {
	out := make(cart.Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// TokenBlacklist 进程内Token黑名单
type TokenBlacklist struct {
	revoked *expirable.LRU[string, struct{}]
}

var _ cart.TokenBlacklist = (*TokenBlacklist)(nil)

// NewTokenBlacklist ttl应等于Access Token有效期
func NewTokenBlacklist(capacity int, ttl time.Duration) *TokenBlacklist {
	return &TokenBlacklist{revoked: expirable.NewLRU[string, struct{}](capacity, nil, ttl)}
}

func (b *TokenBlacklist) Revoke(_ context.Context, sessionID string) error {
	b.revoked.Add(sessionID, struct{}{})
	return nil
}

func (b *TokenBlacklist) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	return b.revoked.Contains(sessionID), nil
}
