package book

import (
	"context"
)

// PendingOrderCounter 查询图书被多少待处理订单引用
// 由订单仓储实现,删除图书前使用
type PendingOrderCounter interface {
	CountPendingByBook(ctx context.Context, bookID uint) (int64, error)
}

// Service 图书目录领域服务
type Service interface {
	// AddBook 上架图书
	// 业务规则:书名作者必填,册数>=1
	AddBook(ctx context.Context, name, author string, copies int) (*Book, error)

	// ListBooks 全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// GetBook 图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 覆盖书名、作者、册数
	// 业务规则:册数可以为0,不能为负
	UpdateBook(ctx context.Context, id uint, name, author string, copies int) (*Book, error)

	// DeleteBook 删除图书
	// 业务规则:仍有待处理订单引用时拒绝删除,否则软删除(历史订单仍能显示书名)
	DeleteBook(ctx context.Context, id uint) error

	// LowStock 低库存图书,threshold<=0时使用默认阈值
	LowStock(ctx context.Context, threshold int) ([]*Book, error)

	// OutOfStock 缺货图书
	OutOfStock(ctx context.Context) ([]*Book, error)
}

type service struct {
	repo             Repository
	pendingOrders    PendingOrderCounter
	defaultThreshold int
}

// NewService 创建图书领域服务
func NewService(repo Repository, pendingOrders PendingOrderCounter, defaultThreshold int) Service {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultLowStockThreshold
	}
	return &service{
		repo:             repo,
		pendingOrders:    pendingOrders,
		defaultThreshold: defaultThreshold,
	}
}

func (s *service) AddBook(ctx context.Context, name, author string, copies int) (*Book, error) {
	book, err := NewBook(name, author, copies)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateBook(ctx context.Context, id uint, name, author string, copies int) (*Book, error) {
	// 1. 查询图书
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 覆盖字段(领域规则校验)
	if err := book.Overwrite(name, author, copies); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	pending, err := s.pendingOrders.CountPendingByBook(ctx, id)
	if err != nil {
		return err
	}
	if pending > 0 {
		return ErrBookInUse
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) LowStock(ctx context.Context, threshold int) ([]*Book, error) {
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}
	return s.repo.ListLowStock(ctx, threshold)
}

func (s *service) OutOfStock(ctx context.Context) ([]*Book, error) {
	return s.repo.ListOutOfStock(ctx)
}
