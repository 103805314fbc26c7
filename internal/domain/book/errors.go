package book

import (
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrMissingFields 书名或作者为空
	ErrMissingFields = apperrors.New(apperrors.ErrCodeInvalidParams, "书名和作者不能为空")

	// ErrInvalidInitialCopies 上架册数非法
	ErrInvalidInitialCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "上架册数必须大于0")

	// ErrInvalidCopies 库存为负
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrBookInUse 存在待处理订单
	ErrBookInUse = apperrors.ErrBookInUse
)
