package cart

import (
	"context"
	"sort"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

var (
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
	ErrItemNotInCart   = apperrors.New(apperrors.ErrCodeNotFound, "购物车中没有这本书")
)

// Cart 会话购物车:图书ID → 数量
// 只存在于会话存储中,不落库;提交订单成功或登出后清空
type Cart map[uint]int

// Entry 购物车条目
type Entry struct {
	BookID   uint
	Quantity int
}

// Add 累加数量
func (c Cart) Add(bookID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	c[bookID] += quantity
	return nil
}

// Remove 移除一本书
func (c Cart) Remove(bookID uint) error {
	if _, ok := c[bookID]; !ok {
		return ErrItemNotInCart
	}
	delete(c, bookID)
	return nil
}

// Entries 按图书ID升序返回条目
func (c Cart) Entries() []Entry {
	entries := make([]Entry, 0, len(c))
	for id, qty := range c {
		entries = append(entries, Entry{BookID: id, Quantity: qty})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].BookID < entries[j].BookID })
	return entries
}

// TotalQuantity 总册数
func (c Cart) TotalQuantity() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// Store 购物车存储,按会话ID隔离
// 实现:Redis(多实例部署)或进程内LRU
type Store interface {
	// Get 会话没有购物车时返回空Cart
	Get(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// TokenBlacklist 登出后的Token黑名单
type TokenBlacklist interface {
	Revoke(ctx context.Context, sessionID string) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// Session 一次登录会话的身份信息，由接口层从Token中解析后传入用例
// 用例本身不保存"当前用户"
type Session struct {
	ID       string
	UserID   uint
	Username string
	IsAdmin  bool
}
