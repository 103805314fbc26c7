package gormdb

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 默认使用SQLite单文件存储，database.driver=mysql时切换到MySQL
// 2. SQLite只保留一个连接，写事务天然串行，结账的"读-校验-扣减"不会交错
// 3. 开发环境开启SQL日志
// 4. 启动时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择方言
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.Database.DSN())
	default:
		dialector = sqlite.Open(cfg.Database.DSN())
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	// TranslateError让唯一约束冲突统一成gorm.ErrDuplicatedKey
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == config.DriverMySQL {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	} else {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("path", cfg.Database.Path).
		Msg("数据库连接成功")

	// 6. 自动迁移表结构
	if err := autoMigrate(db, cfg.Database.Driver); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段，已有数据文件可以直接打开
func autoMigrate(db *gorm.DB, driver string) error {
	if opts := tableOptions(driver); opts != "" {
		db = db.Set("gorm:table_options", opts)
	}
	return db.AutoMigrate(
		&BookModel{},
		&UserModel{},
		&OrderModel{},
	)
}

// tableOptions 建表选项
// MySQL默认排序规则不区分大小写，"Alice"会和"alice"撞上唯一索引，这里改用utf8mb4_bin；
// 只在建表时生效，已有的MySQL表需要手动ALTER
func tableOptions(driver string) string {
	if driver == config.DriverMySQL {
		return "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"
	}
	return ""
}

// BookModel GORM图书模型
// 列名与历史数据文件一致：books(id, name, author, copies)
// deleted_at为新增列，用于软删除
type BookModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"column:name;size:255;not null"`
	Author    string         `gorm:"column:author;size:255;not null"`
	Copies    int            `gorm:"column:copies;not null;check:copies >= 0"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// UserModel GORM用户模型
// users(id, username, email, password, is_admin)
type UserModel struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"column:username;uniqueIndex;size:100;not null"`
	Email    string `gorm:"column:email;size:255;not null"`
	Password string `gorm:"column:password;size:255;not null"`
	IsAdmin  bool   `gorm:"column:is_admin;not null;default:false"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// OrderModel GORM订单模型
// orders(id, book_id, username, quantity, timestamp, status)
// username是用户名副本，不建外键
type OrderModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"column:book_id;index;not null"`
	Book      BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
	Username  string    `gorm:"column:username;index;size:100;not null"`
	Quantity  int       `gorm:"column:quantity;not null;check:quantity >= 1"`
	Timestamp time.Time `gorm:"column:timestamp;index;not null"`
	Status    string    `gorm:"column:status;index;size:16;not null;default:Pending"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}
