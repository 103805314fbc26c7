// Package logger 基于zerolog的全局日志初始化
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config 日志配置（与config.LogConfig字段一致，避免pkg依赖internal）
type Config struct {
	Level        string
	Format       string // console | json
	Output       string // stdout | stderr | 文件路径
	EnableCaller bool
}

// Init 初始化全局logger
// 返回的closer用于关闭日志文件（输出到stdout/stderr时为空操作）
func Init(cfg Config) (func() error, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	// ctx中没有请求级logger时，log.Ctx(ctx)回落到全局logger
	zerolog.DefaultContextLogger = &log.Logger

	return closer, nil
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch output {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		return f, f.Close, nil
	}
}
