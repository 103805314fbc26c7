package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	t.Run("同一类别带不同提示仍然匹配", func(t *testing.T) {
		err := Newf(ErrCodeInsufficientStock, "图书 %d 库存不足", 7)
		assert.True(t, errors.Is(err, ErrInsufficientStock))
		assert.False(t, errors.Is(err, ErrStockMismatch))
	})

	t.Run("被fmt包装后仍能识别", func(t *testing.T) {
		err := fmt.Errorf("提交订单: %w", ErrStockMismatch)
		assert.True(t, errors.Is(err, ErrStockMismatch))
		assert.Equal(t, ErrCodeStockMismatch, CodeOf(err))
	})

	t.Run("内部原因可以继续Unwrap", func(t *testing.T) {
		cause := errors.New("disk I/O error")
		err := Wrap(cause, "查询图书失败")
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrInternal))
	})
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, "系统内部错误", appErr.Message)

	assert.Same(t, ErrBookNotFound, GetAppError(ErrBookNotFound))
	assert.Equal(t, 0, CodeOf(nil))
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[40402] 图书不存在", ErrBookNotFound.Error())
	assert.Equal(t, "[50000] 保存失败: boom", Wrap(errors.New("boom"), "保存失败").Error())
}

func TestAppError_WithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrRedisError.WithCause(cause)

	assert.NotSame(t, ErrRedisError, err)
	assert.Nil(t, ErrRedisError.Err, "预定义错误不能被修改")
	assert.True(t, errors.Is(err, ErrRedisError))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "[50002] 缓存服务错误: connection refused", err.Error())
}

func TestWrapf(t *testing.T) {
	err := Wrapf(errors.New("channel closed"), "发布事件%s失败", "order.created")
	assert.Equal(t, ErrCodeInternal, err.Code)
	assert.Equal(t, "发布事件order.created失败", err.Message)
}
