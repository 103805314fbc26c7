package book

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// ListBooksUseCase 图书列表
// 书店规模小,不分页,按上架顺序返回
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context) ([]BookView, error) {
	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(books), nil
}

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 执行详情查询,不存在返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookView, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(b)
	return &view, nil
}
