package dto

// AddBookRequest 上架请求
type AddBookRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Author string `json:"author" binding:"required,max=255"`
	Copies int    `json:"copies" binding:"required,min=1"`
}

// UpdateBookRequest 修改请求，三个字段整体覆盖
// Copies用指针区分"未传"和"传了0"
type UpdateBookRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Author string `json:"author" binding:"required,max=255"`
	Copies *int   `json:"copies" binding:"required,min=0"`
}

// LowStockQuery 低库存查询参数，threshold缺省或<=0时使用配置的阈值
type LowStockQuery struct {
	Threshold int `form:"threshold" binding:"omitempty,min=0"`
}
