package book

import (
	"strconv"
	"strings"
)

// OutOfStockLabel 库存为0时的展示文案
const OutOfStockLabel = "Out of Stock"

// DefaultLowStockThreshold 默认低库存阈值
const DefaultLowStockThreshold = 5

// Book 图书实体
// DDD设计说明:
// 1. Copies即库存册数,任何操作之后都不能为负数
// 2. 库存只在管理员结账(checkout)时扣减,提交订单不占用库存
type Book struct {
	ID     uint
	Name   string // 书名
	Author string // 作者
	Copies int    // 库存册数
}

// NewBook 创建新图书(工厂方法)
// 业务规则:书名、作者必填,上架册数至少为1
func NewBook(name, author string, copies int) (*Book, error) {
	name, author = strings.TrimSpace(name), strings.TrimSpace(author)
	if name == "" || author == "" {
		return nil, ErrMissingFields
	}
	if copies < 1 {
		return nil, ErrInvalidInitialCopies
	}
	return &Book{Name: name, Author: author, Copies: copies}, nil
}

// Overwrite 覆盖全部可变字段
// 业务规则:允许把册数改为0(下架),但不能为负数
func (b *Book) Overwrite(name, author string, copies int) error {
	name, author = strings.TrimSpace(name), strings.TrimSpace(author)
	if name == "" || author == "" {
		return ErrMissingFields
	}
	if copies < 0 {
		return ErrInvalidCopies
	}
	b.Name = name
	b.Author = author
	b.Copies = copies
	return nil
}

// IsOutOfStock 是否缺货
func (b *Book) IsOutOfStock() bool {
	return b.Copies == 0
}

// IsLowStock 是否低库存(0 < copies <= threshold)
func (b *Book) IsLowStock(threshold int) bool {
	return b.Copies > 0 && b.Copies <= threshold
}

// CanFulfill 当前库存能否满足数量
func (b *Book) CanFulfill(quantity int) bool {
	return quantity > 0 && b.Copies >= quantity
}

// Availability 展示用库存文案
func (b *Book) Availability() string {
	if b.IsOutOfStock() {
		return OutOfStockLabel
	}
	return strconv.Itoa(b.Copies)
}
