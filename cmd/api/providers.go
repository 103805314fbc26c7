package main

import (
	"context"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
	apporder "github.com/xiebiao/bookstore-lite/internal/application/order"
	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/events"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
)

// App 进程级对象：HTTP引擎与启动时要执行的初始化
type App struct {
	Engine    *gin.Engine
	Bootstrap *appuser.BootstrapUseCase
}

func newApp(engine *gin.Engine, bootstrap *appuser.BootstrapUseCase) *App {
	return &App{Engine: engine, Bootstrap: bootstrap}
}

// ========================================
// Custom Providers
// ========================================
// 教学说明：
// 构造函数参数需要从Config中提取，或者需要返回cleanup时，
// 编写自定义Provider交给Wire

// provideDB 数据库连接，cleanup关闭连接
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := gormdb.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := gormdb.Close(db); err != nil {
			log.Error().Err(err).Msg("关闭数据库失败")
		}
	}
	return db, cleanup, nil
}

// provideRedisClient redis.enabled=false时返回nil，会话存储退回进程内存
func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideCartStore 购物车存储，过期时间取自签发Token的Manager
func provideCartStore(cfg *config.Config, client *goredis.Client, manager *jwt.Manager) cart.Store {
	if client != nil {
		return redis.NewCartStore(client, manager.TTL())
	}
	return memory.NewCartStore(cfg.Account.CartCapacity, manager.TTL())
}

// provideTokenBlacklist 登出黑名单，记录保留到Token自然过期
func provideTokenBlacklist(cfg *config.Config, client *goredis.Client, manager *jwt.Manager) cart.TokenBlacklist {
	if client != nil {
		return redis.NewTokenBlacklist(client, manager.TTL())
	}
	return memory.NewTokenBlacklist(cfg.Account.CartCapacity, manager.TTL())
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

// providePasswordHasher password.mode=plaintext-insecure时明文存储
func providePasswordHasher(cfg *config.Config) user.PasswordHasher {
	if cfg.Password.Mode == config.PasswordModePlaintext {
		return user.InsecurePlaintextHasher{}
	}
	return user.NewBcryptHasher(cfg.Password.BcryptCost)
}

func provideAdminSeed(cfg *config.Config) user.AdminSeed {
	return user.AdminSeed{
		Username: cfg.Account.AdminUsername,
		Email:    cfg.Account.AdminEmail,
		Password: cfg.Account.AdminPassword,
	}
}

// provideBookService 订单仓储同时充当"待处理订单计数器"
func provideBookService(repo book.Repository, orderRepo order.Repository, cfg *config.Config) book.Service {
	return book.NewService(repo, orderRepo, cfg.Catalog.LowStockThreshold)
}

// provideEventPublisher 事件发布者，cleanup关闭与代理的连接
func provideEventPublisher(cfg *config.Config) (events.Publisher, func(), error) {
	p, err := events.NewPublisher(cfg)
	if err != nil {
		return nil, nil, err
	}
	return p, func() { _ = p.Close() }, nil
}

func provideOrderEvents(p events.Publisher) apporder.EventPublisher {
	return p
}

func provideLowStockUseCase(svc book.Service, cfg *config.Config) *appbook.LowStockUseCase {
	return appbook.NewLowStockUseCase(svc, cfg.Catalog.LowStockThreshold)
}

func provideCheckoutUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager *gormdb.TxManager,
	publisher apporder.EventPublisher,
	cfg *config.Config,
) *apporder.CheckoutUseCase {
	return apporder.NewCheckoutUseCase(orderRepo, bookRepo, txManager, publisher, cfg.Catalog.LowStockThreshold)
}
