// Package gormdbtest 测试用的SQLite数据库
package gormdbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
)

// Config 指向path的SQLite配置
func Config(path string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        path,
			BusyTimeout: 5 * time.Second,
		},
	}
}

// NewDB 在t.TempDir()下创建独立的数据文件并完成迁移，测试结束自动关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	return Open(t, filepath.Join(t.TempDir(), "bookstore.db"))
}

// Open 打开（或创建）指定的数据文件，用于验证重复初始化
func Open(t testing.TB, path string) *gorm.DB {
	t.Helper()
	db, err := gormdb.NewDB(Config(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormdb.Close(db) })
	return db
}
