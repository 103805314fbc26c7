package book

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// StockReport 库存报表
// AlertCount即列表长度,对应管理后台的"库存提醒"数字
type StockReport struct {
	Threshold  int        `json:"threshold,omitempty"`
	AlertCount int        `json:"alert_count"`
	Books      []BookView `json:"books"`
}

// LowStockUseCase 低库存报表:0 < copies <= threshold
type LowStockUseCase struct {
	bookService      book.Service
	defaultThreshold int
}

// NewLowStockUseCase defaultThreshold<=0时使用book.DefaultLowStockThreshold
func NewLowStockUseCase(bookService book.Service, defaultThreshold int) *LowStockUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = book.DefaultLowStockThreshold
	}
	return &LowStockUseCase{bookService: bookService, defaultThreshold: defaultThreshold}
}

// Execute threshold<=0时使用默认阈值
func (uc *LowStockUseCase) Execute(ctx context.Context, threshold int) (*StockReport, error) {
	if threshold <= 0 {
		threshold = uc.defaultThreshold
	}

	books, err := uc.bookService.LowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return &StockReport{
		Threshold:  threshold,
		AlertCount: len(books),
		Books:      toViews(books),
	}, nil
}

// OutOfStockUseCase 缺货报表:copies == 0
type OutOfStockUseCase struct {
	bookService book.Service
}

// NewOutOfStockUseCase 创建缺货报表用例
func NewOutOfStockUseCase(bookService book.Service) *OutOfStockUseCase {
	return &OutOfStockUseCase{bookService: bookService}
}

// Execute 执行缺货查询
func (uc *OutOfStockUseCase) Execute(ctx context.Context) (*StockReport, error) {
	books, err := uc.bookService.OutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	return &StockReport{AlertCount: len(books), Books: toViews(books)}, nil
}
