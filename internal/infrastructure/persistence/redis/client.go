package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// NewClient 创建Redis客户端
// 设计说明：
// 1. 只有redis.enabled=true时才会调用，否则会话数据保存在进程内
// 2. 启动时Ping一次，连不上直接失败
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Info().Str("addr", cfg.Redis.Addr()).Msg("Redis连接成功")
	return client, nil
}

// cacheError Redis故障统一返回ErrRedisError，操作说明和原始错误只进日志
func cacheError(err error, action string) error {
	return apperrors.ErrRedisError.WithCause(fmt.Errorf("%s: %w", action, err))
}
