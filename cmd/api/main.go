package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/pkg/logger"
	"github.com/xiebiao/bookstore-lite/pkg/tracing"
)

// @title           Bookstore Lite API
// @version         1.0
// @description     小型书店：图书目录、购物车、订单提交与管理员结账
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式: Bearer {token}
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	closeLog, err := logger.Init(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer closeLog()

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("database", cfg.Database.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Bool("events", cfg.Events.Enabled).
		Msg("配置加载成功")

	if cfg.Password.Mode == config.PasswordModePlaintext {
		log.Warn().Msg("password.mode=plaintext-insecure：密码以明文写入数据库，仅用于兼容旧数据")
	}

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(context.Background(), cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	// 4. 依赖注入（wire_gen.go）
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	// 5. 首次启动写入管理员
	created, err := app.Bootstrap.Execute(context.Background())
	if err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}
	if created {
		log.Info().Str("username", cfg.Account.AdminUsername).Msg("已创建默认管理员")
	}

	// 6. 启动HTTP服务，收到信号后优雅退出
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("服务异常退出: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("正在关闭服务")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	log.Info().Msg("服务已退出")
	return nil
}
