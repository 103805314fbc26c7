package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// idParam 解析路径中的正整数ID，失败时直接写出参数错误响应
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+name+"必须为正整数")
		return 0, false
	}
	return uint(id), true
}

// bindError 区分两类绑定失败
// 1. binding标签校验不通过（必填、范围、枚举）：40900
// 2. 请求体不是合法JSON或字段类型不对：40901
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}
	response.ErrorWithCode(c, apperrors.ErrBindError.Code, apperrors.ErrBindError.Message+": "+err.Error())
}
