package gormdb

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// dbError 数据库故障统一返回ErrDatabaseError，操作说明和驱动错误只进日志
func dbError(err error, action string) error {
	return apperrors.ErrDatabaseError.WithCause(fmt.Errorf("%s: %w", action, err))
}

// isDuplicateError 唯一约束冲突
// TranslateError未覆盖的驱动错误再按文本兜底（MySQL: Duplicate entry，SQLite: UNIQUE constraint failed）
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
