package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（0表示成功），HTTP状态码固定为200
// 2. Message是用户可读的提示
// 3. Data成功时携带业务数据
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部原因只写日志
	if appErr.Err != nil {
		log.Error().
			Err(appErr.Err).
			Int("code", appErr.Code).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg(appErr.Message)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ListData 列表数据封装
// 书店数据量小，不做分页，只附带总数
type ListData struct {
	List  interface{} `json:"list"`
	Total int         `json:"total"`
}

// SuccessWithList 列表成功响应
func SuccessWithList(c *gin.Context, list interface{}, total int) {
	Success(c, &ListData{List: list, Total: total})
}
