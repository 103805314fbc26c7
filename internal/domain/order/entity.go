package order

import (
	"time"
)

// Status 订单状态
// 数据库中以文本存储(Pending/Completed),与已有数据文件保持兼容
type Status string

const (
	StatusPending   Status = "Pending"   // 已提交,等待管理员结账
	StatusCompleted Status = "Completed" // 已结账,库存已扣减(终态)
)

// Valid 是否为已知状态
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Order 订单
// 说明:
// 1. 一次购物车提交中的每本书生成一行订单,同一批次共享提交时间
// 2. Username是下单时的用户名副本,不是外键
// 3. 状态机只有 Pending → Completed 一条边
type Order struct {
	ID        uint
	BookID    uint
	Username  string
	Quantity  int
	CreatedAt time.Time // 对应orders.timestamp列
	Status    Status
}

// NewPendingOrder 创建待处理订单(工厂方法)
func NewPendingOrder(bookID uint, username string, quantity int, submittedAt time.Time) (*Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return &Order{
		BookID:    bookID,
		Username:  username,
		Quantity:  quantity,
		CreatedAt: submittedAt,
		Status:    StatusPending,
	}, nil
}

// IsPending 是否等待结账
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// Complete 结账(领域行为)
// 非Pending状态返回ErrOrderAlreadyProcessed
func (o *Order) Complete() error {
	if !o.IsPending() {
		return ErrOrderAlreadyProcessed
	}
	o.Status = StatusCompleted
	return nil
}

// View 订单列表视图(订单联表图书名)
type View struct {
	OrderID   uint      `json:"order_id"`
	Username  string    `json:"username"`
	BookID    uint      `json:"book_id"`
	BookName  string    `json:"book_name"`
	Quantity  int       `json:"quantity"`
	Status    Status    `json:"status"`
	OrderTime time.Time `json:"order_time"`
}
