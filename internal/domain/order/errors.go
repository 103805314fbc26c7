package order

import (
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrOrderAlreadyProcessed 订单已结账
	ErrOrderAlreadyProcessed = apperrors.ErrOrderAlreadyProcessed

	// ErrStockError 提交时库存不足(错误类别,用于errors.Is)
	ErrStockError = apperrors.ErrInsufficientStock

	// ErrStockMismatch 结账时库存不符(错误类别,用于errors.Is)
	ErrStockMismatch = apperrors.ErrStockMismatch

	// ErrEmptyCart 购物车为空
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeInvalidParams, "购物车为空")

	// ErrInvalidQuantity 数量非法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidStatus 未知的状态过滤条件
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "订单状态只能是Pending或Completed")
)

// NewStockError 提交时库存不足(指明图书)
func NewStockError(bookID uint) error {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock, "库存不足: 图书ID %d 没有足够的册数", bookID)
}

// NewStockMismatch 结账时库存不足(指明图书)
func NewStockMismatch(bookID uint) error {
	return apperrors.Newf(apperrors.ErrCodeStockMismatch, "库存不符: 图书ID %d 当前册数不足,无法结账", bookID)
}
