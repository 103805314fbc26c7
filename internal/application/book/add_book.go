package book

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// AddBookUseCase 图书上架用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则(必填、册数>=1)由领域层校验
// 2. 输入输出使用DTO,与HTTP层、CLI解耦
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建上架用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService}
}

// AddBookRequest 上架请求DTO
type AddBookRequest struct {
	Name   string
	Author string
	Copies int
}

// Execute 执行上架用例
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*BookView, error) {
	b, err := uc.bookService.AddBook(ctx, req.Name, req.Author, req.Copies)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("book_id", b.ID).Str("name", b.Name).Int("copies", b.Copies).Msg("图书已上架")
	view := toView(b)
	return &view, nil
}
