package book

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
)

// UpdateBookUseCase 修改图书(管理员)
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建修改用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 修改请求DTO,三个字段整体覆盖
type UpdateBookRequest struct {
	ID     uint
	Name   string
	Author string
	Copies int
}

// Execute 执行修改
// 册数可以改为0(标记缺货),不能为负
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookView, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, req.Name, req.Author, req.Copies)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("book_id", b.ID).Int("copies", b.Copies).Msg("图书已修改")
	view := toView(b)
	return &view, nil
}

// DeleteBookUseCase 删除图书(管理员)
// 设计说明:
// 检查待处理订单与软删除放在同一事务里,
// 避免检查通过后、删除前有新订单提交引用这本书
type DeleteBookUseCase struct {
	bookService book.Service
	txManager   *gormdb.TxManager
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, txManager *gormdb.TxManager) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, txManager: txManager}
}

// Execute 执行删除
// 仍有Pending订单引用时返回ErrBookInUse
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.bookService.DeleteBook(txCtx, id)
	})
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().Uint("book_id", id).Msg("图书已删除")
	return nil
}
