package order

import (
	"context"
	"errors"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// CartUseCase 会话购物车
// 设计说明:
// 1. 购物车只存在于会话存储(Redis或进程内LRU),按会话ID隔离
// 2. 加购时检查当前库存,只是提前拦截明显不可能的请求;
//    真正的库存校验在提交和结账时进行
// 3. 管理员没有购物车
type CartUseCase struct {
	carts    cart.Store
	bookRepo book.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(carts cart.Store, bookRepo book.Repository) *CartUseCase {
	return &CartUseCase{carts: carts, bookRepo: bookRepo}
}

// CartItemView 购物车条目
// Available为false表示图书已下架,提交时会失败
type CartItemView struct {
	BookID    uint   `json:"book_id"`
	BookName  string `json:"book_name"`
	Author    string `json:"author"`
	Quantity  int    `json:"quantity"`
	Copies    int    `json:"copies"`
	Available bool   `json:"available"`
}

// CartView 购物车视图
type CartView struct {
	Items         []CartItemView `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
}

// AddItem 加入购物车,重复加入同一本书时数量累加
// 缺货或累加后超过当前册数时拒绝
func (uc *CartUseCase) AddItem(ctx context.Context, session cart.Session, bookID uint, quantity int) (*CartView, error) {
	if session.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	if quantity < 1 {
		return nil, order.ErrInvalidQuantity
	}

	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	c, err := uc.carts.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if !b.CanFulfill(c[bookID] + quantity) {
		return nil, order.NewStockError(bookID)
	}

	if err := c.Add(bookID, quantity); err != nil {
		return nil, err
	}
	if err := uc.carts.Save(ctx, session.ID, c); err != nil {
		return nil, err
	}
	return uc.view(ctx, c)
}

// RemoveItem 移除一本书
func (uc *CartUseCase) RemoveItem(ctx context.Context, session cart.Session, bookID uint) (*CartView, error) {
	if session.IsAdmin {
		return nil, apperrors.ErrForbidden
	}

	c, err := uc.carts.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(bookID); err != nil {
		return nil, err
	}
	if err := uc.carts.Save(ctx, session.ID, c); err != nil {
		return nil, err
	}
	return uc.view(ctx, c)
}

// View 查看购物车,附带当前书名与册数
func (uc *CartUseCase) View(ctx context.Context, session cart.Session) (*CartView, error) {
	if session.IsAdmin {
		return nil, apperrors.ErrForbidden
	}

	c, err := uc.carts.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, c)
}

// Clear 清空购物车
func (uc *CartUseCase) Clear(ctx context.Context, session cart.Session) error {
	if session.IsAdmin {
		return apperrors.ErrForbidden
	}
	return uc.carts.Clear(ctx, session.ID)
}

func (uc *CartUseCase) view(ctx context.Context, c cart.Cart) (*CartView, error) {
	entries := c.Entries()
	view := &CartView{Items: make([]CartItemView, 0, len(entries)), TotalQuantity: c.TotalQuantity()}

	for _, e := range entries {
		item := CartItemView{BookID: e.BookID, Quantity: e.Quantity}

		b, err := uc.bookRepo.FindByID(ctx, e.BookID)
		switch {
		case err == nil:
			item.BookName, item.Author, item.Copies = b.Name, b.Author, b.Copies
			item.Available = b.CanFulfill(e.Quantity)
		case errors.Is(err, book.ErrBookNotFound):
		default:
			return nil, err
		}
		view.Items = append(view.Items, item)
	}
	return view, nil
}
