package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义,infrastructure层实现;所有方法都要参与ctx中携带的事务
type Repository interface {
	// Create 创建图书,回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 覆盖书名、作者、册数
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 按ID升序返回全部图书
	List(ctx context.Context) ([]*Book, error)

	// ListLowStock 0 < copies <= threshold
	ListLowStock(ctx context.Context, threshold int) ([]*Book, error)

	// ListOutOfStock copies = 0
	ListOutOfStock(ctx context.Context) ([]*Book, error)

	// LockByID 加行锁查询图书(结账时使用)
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 原子更新库存
	// delta为负数表示扣减;扣减后库存不足返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) (int, error)
}
