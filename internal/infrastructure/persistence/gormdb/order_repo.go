package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-lite/internal/domain/order"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// CreateBatch 一条INSERT写入整批订单
func (r *orderRepository) CreateBatch(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	models := make([]OrderModel, len(orders))
	for i, o := range orders {
		models[i] = OrderModel{
			BookID:    o.BookID,
			Username:  o.Username,
			Quantity:  o.Quantity,
			Timestamp: o.CreatedAt,
			Status:    string(o.Status),
		}
	}

	if err := dbFromContext(ctx, r.db).Omit(clause.Associations).Create(&models).Error; err != nil {
		return dbError(err, "创建订单失败")
	}

	for i := range orders {
		orders[i].ID = models[i].ID
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	if err := dbFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, dbError(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// MarkCompleted 条件更新：UPDATE orders SET status='Completed' WHERE id=? AND status='Pending'
func (r *orderRepository) MarkCompleted(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).
		Model(&OrderModel{}).
		Where("id = ? AND status = ?", id, string(order.StatusPending)).
		Update("status", string(order.StatusCompleted))
	if result.Error != nil {
		return dbError(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderAlreadyProcessed
	}
	return nil
}

func (r *orderRepository) ListByUsername(ctx context.Context, username string) ([]*order.View, error) {
	return r.listViews(r.viewQuery(ctx).Where("o.username = ?", username))
}

func (r *orderRepository) ListAll(ctx context.Context, status order.Status) ([]*order.View, error) {
	query := r.viewQuery(ctx)
	if status != "" {
		query = query.Where("o.status = ?", string(status))
	}
	return r.listViews(query)
}

func (r *orderRepository) CountPendingByBook(ctx context.Context, bookID uint) (int64, error) {
	var n int64
	err := dbFromContext(ctx, r.db).
		Model(&OrderModel{}).
		Where("book_id = ? AND status = ?", bookID, string(order.StatusPending)).
		Count(&n).Error
	if err != nil {
		return 0, dbError(err, "统计待处理订单失败")
	}
	return n, nil
}

// orderViewRow 联表查询结果
type orderViewRow struct {
	OrderID   uint      `gorm:"column:order_id"`
	Username  string    `gorm:"column:username"`
	BookID    uint      `gorm:"column:book_id"`
	BookName  string    `gorm:"column:book_name"`
	Quantity  int       `gorm:"column:quantity"`
	Status    string    `gorm:"column:status"`
	OrderTime time.Time `gorm:"column:order_time"`
}

// viewQuery 订单联表图书
// 直接用表名联表，不带软删除条件：已删除图书的历史订单仍显示书名
func (r *orderRepository) viewQuery(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).
		Table("orders AS o").
		Select("o.id AS order_id, o.username AS username, o.book_id AS book_id, " +
			"COALESCE(b.name, '') AS book_name, o.quantity AS quantity, " +
			"o.status AS status, o.timestamp AS order_time").
		Joins("LEFT JOIN books AS b ON b.id = o.book_id")
}

// listViews 新订单在前；同一批提交的订单时间相同，再按ID倒序
func (r *orderRepository) listViews(query *gorm.DB) ([]*order.View, error) {
	var rows []orderViewRow
	if err := query.Order("o.timestamp DESC").Order("o.id DESC").Scan(&rows).Error; err != nil {
		return nil, dbError(err, "查询订单列表失败")
	}

	views := make([]*order.View, len(rows))
	for i, row := range rows {
		views[i] = &order.View{
			OrderID:   row.OrderID,
			Username:  row.Username,
			BookID:    row.BookID,
			BookName:  row.BookName,
			Quantity:  row.Quantity,
			Status:    order.Status(row.Status),
			OrderTime: row.OrderTime,
		}
	}
	return views, nil
}

func toOrderEntity(model *OrderModel) *order.Order {
	return &order.Order{
		ID:        model.ID,
		BookID:    model.BookID,
		Username:  model.Username,
		Quantity:  model.Quantity,
		CreatedAt: model.Timestamp,
		Status:    order.Status(model.Status),
	}
}
