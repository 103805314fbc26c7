//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
	apporder "github.com/xiebiao/bookstore-lite/internal/application/order"
	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖：数据库、Redis、会话存储、事件
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	provideCartStore,
	provideTokenBlacklist,
	provideEventPublisher,
	provideOrderEvents,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	gormdb.NewUserRepository,
	gormdb.NewBookRepository,
	gormdb.NewOrderRepository,
	gormdb.NewTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	providePasswordHasher,
	provideAdminSeed,
	user.NewService,
	provideBookService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewBootstrapUseCase,

	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	provideLowStockUseCase,
	appbook.NewOutOfStockUseCase,

	apporder.NewCartUseCase,
	apporder.NewSubmitCartUseCase,
	apporder.NewUserOrdersUseCase,
	apporder.NewAllOrdersUseCase,
	provideCheckoutUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewOrderHandler,
	router.NewRouter,
)

// InitializeApp Injector
// 返回的cleanup按依赖的逆序关闭事件连接、Redis、数据库
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
