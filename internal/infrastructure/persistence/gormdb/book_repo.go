package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// bookRepository 图书仓储实现
// 负责领域实体与GORM模型之间的转换，以及数据库错误到领域错误的转换
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Name:   b.Name,
		Author: b.Author,
		Copies: b.Copies,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return dbError(err, "创建图书失败")
	}

	b.ID = model.ID
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := dbFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 只更新三个业务字段
// 不用Save：Save会连同deleted_at一起覆盖
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	err := dbFromContext(ctx, r.db).
		Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"name":   b.Name,
			"author": b.Author,
			"copies": b.Copies,
		}).Error
	if err != nil {
		return dbError(err, "更新图书失败")
	}
	return nil
}

// Delete 软删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return dbError(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	return r.find(dbFromContext(ctx, r.db), "查询图书列表失败")
}

func (r *bookRepository) ListLowStock(ctx context.Context, threshold int) ([]*book.Book, error) {
	query := dbFromContext(ctx, r.db).Where("copies > 0 AND copies <= ?", threshold)
	return r.find(query, "查询低库存图书失败")
}

func (r *bookRepository) ListOutOfStock(ctx context.Context) ([]*book.Book, error) {
	query := dbFromContext(ctx, r.db).Where("copies = 0")
	return r.find(query, "查询缺货图书失败")
}

// LockByID 加行锁查询图书
// MySQL: SELECT ... FOR UPDATE；SQLite方言会忽略该子句，由单连接事务保证串行
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// UpdateStock 原子更新库存，返回更新后的册数
// UPDATE books SET copies = copies + ? WHERE id = ? AND copies + ? >= 0
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) (int, error) {
	db := dbFromContext(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("copies + ? >= 0", delta).
		Update("copies", gorm.Expr("copies + ?", delta))
	if result.Error != nil {
		return 0, dbError(result.Error, "更新库存失败")
	}

	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return 0, book.ErrBookNotFound
		}
		return 0, dbError(err, "查询图书失败")
	}

	// 图书存在但没有行被更新，说明库存不足
	if result.RowsAffected == 0 && delta != 0 {
		return model.Copies, book.ErrInsufficientStock
	}
	return model.Copies, nil
}

func (r *bookRepository) find(query *gorm.DB, failMsg string) ([]*book.Book, error) {
	var models []BookModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, failMsg)
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:     model.ID,
		Name:   model.Name,
		Author: model.Author,
		Copies: model.Copies,
	}
}
