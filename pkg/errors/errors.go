package errors

import (
	"errors"
	"fmt"
)

// AppError 应用错误
// 设计说明：
// 1. Code标识错误类别，客户端依据Code判断（HTTP状态码统一为200）
// 2. Message是面向用户的提示
// 3. Err是内部原因，只进日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As穿透到内部错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// errors.Is(err, ErrStockMismatch) 对同一类别的所有实例都成立，
// 即使Message里带了具体的图书ID。
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New 创建AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 创建带格式化信息的AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装基础设施错误（数据库、网络等），统一归为内部错误
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WithCause 复制预定义错误并附上内部原因，Code和Message不变
// 用于数据库、Redis这类有专门错误码的基础设施故障
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// - 4xxxx: 调用方可以修正后重试
// - 5xxxx: 服务端故障

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101 // Token无效
	ErrCodeTokenExpired       = 40102 // Token过期
	ErrCodeInvalidCredentials = 40103 // 用户名或密码错误
	ErrCodeForbidden          = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound      = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound  = 40401 // 用户不存在
	ErrCodeBookNotFound  = 40402 // 图书不存在
	ErrCodeOrderNotFound = 40403 // 订单不存在

	// 业务规则错误（40000-40099）
	ErrCodeInsufficientStock     = 40001 // 提交订单时库存不足
	ErrCodeOrderAlreadyProcessed = 40002 // 订单已处理
	ErrCodeUsernameDuplicate     = 40003 // 用户名已存在
	ErrCodeStockMismatch         = 40006 // 结账时库存不足
	ErrCodeBookInUse             = 40007 // 图书仍被待处理订单引用
	ErrCodeDuplicateEntry        = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized       = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "用户名或密码错误")
	ErrForbidden          = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrUserNotFound  = New(ErrCodeUserNotFound, "用户不存在")
	ErrBookNotFound  = New(ErrCodeBookNotFound, "图书不存在")
	ErrOrderNotFound = New(ErrCodeOrderNotFound, "订单不存在")

	// 业务规则
	ErrInsufficientStock     = New(ErrCodeInsufficientStock, "库存不足")
	ErrOrderAlreadyProcessed = New(ErrCodeOrderAlreadyProcessed, "订单不存在或已处理")
	ErrUsernameDuplicate     = New(ErrCodeUsernameDuplicate, "用户名已存在，请更换")
	ErrStockMismatch         = New(ErrCodeStockMismatch, "库存与订单不符，无法结账")
	ErrBookInUse             = New(ErrCodeBookInUse, "图书存在待处理订单，不能删除")

	// 参数错误
	ErrBindError = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// CodeOf 返回错误码，非AppError返回ErrCodeInternal
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}
