package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookstore-lite/docs" // 注册swagger文档

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
)

// NewRouter 组装gin引擎
//
// 中间件顺序：
//  1. Recovery 最外层，兜住后续所有中间件的panic
//  2. RequestLogger 生成request_id，请求级logger放入context
//  3. Metrics 按路由模板统计
//  4. CORS
//
// 权限分三档：公开、登录用户、管理员；购物车和下单只对普通用户开放
func NewRouter(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	orderHandler *handler.OrderHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.TraceIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus抓取入口
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档：http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 账户（注册、登录公开）
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书目录（公开）
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
		}

		// 购物车（普通用户）
		cartGroup := v1.Group("/cart")
		cartGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRegular())
		{
			cartGroup.GET("", orderHandler.ViewCart)
			cartGroup.DELETE("", orderHandler.ClearCart)
			cartGroup.POST("/items", orderHandler.AddCartItem)
			cartGroup.DELETE("/items/:book_id", orderHandler.RemoveCartItem)
		}

		// 订单
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", authMiddleware.RequireRegular(), orderHandler.SubmitOrder)
			orders.GET("", orderHandler.MyOrders)
		}

		// 管理员
		admin := v1.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			admin.GET("/users", userHandler.ListUsers)

			admin.POST("/books", bookHandler.AddBook)
			admin.PUT("/books/:id", bookHandler.UpdateBook)
			admin.DELETE("/books/:id", bookHandler.DeleteBook)

			admin.GET("/stock/low", bookHandler.LowStock)
			admin.GET("/stock/out", bookHandler.OutOfStock)

			admin.GET("/orders", orderHandler.ListOrders)
			admin.POST("/orders/:id/checkout", orderHandler.Checkout)
		}
	}

	return r
}
