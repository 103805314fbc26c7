package gormdb

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 1. 封装GORM的Transaction方法
// 2. 事务DB通过context传递给仓储
// 3. 嵌套调用时GORM自动使用Savepoint
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn返回error时ROLLBACK，返回nil时COMMIT
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    b, err := bookRepo.LockByID(ctx, bookID)
//	    ...
//	    _, err = bookRepo.UpdateStock(ctx, bookID, -quantity)
//	    return err
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFromContext(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext 优先使用ctx中的事务DB
// SQLite只有一个连接，事务内绕过tx会死锁，所以仓储方法一律走这里
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
