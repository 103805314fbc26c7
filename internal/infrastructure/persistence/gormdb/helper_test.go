package gormdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
)

// newTestDB 每个测试一个独立的SQLite文件
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "bookstore.db"))
}

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        path,
			BusyTimeout: 5 * time.Second,
		},
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}
