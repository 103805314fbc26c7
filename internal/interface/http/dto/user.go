package dto

// RegisterRequest 注册请求
// 邮箱只做粗略校验（包含@和.），由领域层负责，这里不使用binding的email规则
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
