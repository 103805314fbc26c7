package dto

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// OrderListQuery 管理员订单列表过滤
type OrderListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Pending Completed"`
}
