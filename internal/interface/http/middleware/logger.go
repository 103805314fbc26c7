package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/response"
	"github.com/xiebiao/bookstore-lite/pkg/tracing"
)

// RequestIDHeader 请求ID头，客户端传入时沿用，否则生成uuid
const RequestIDHeader = "X-Request-ID"

// TraceIDHeader 启用链路追踪时返回本次请求的TraceID
const TraceIDHeader = "X-Trace-ID"

// RequestLogger 每个请求一行结构化日志
// 教学要点：
// 1. 请求级logger（带request_id）放入request context，用例中log.Ctx(ctx)即可取到
// 2. 同时开启一个Server Span作为用例Span的父节点；追踪启用时日志带上trace_id，
//    按trace_id可以从日志跳到链路
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracing.StartSpan(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		logCtx := log.Logger.With().Str("request_id", requestID)
		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			logCtx = logCtx.Str("trace_id", traceID)
			c.Header(TraceIDHeader, traceID)
		}
		logger := logCtx.Logger()
		c.Request = c.Request.WithContext(logger.WithContext(ctx))

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = zerolog.Ctx(c.Request.Context()).Error()
		case status >= 400:
			event = zerolog.Ctx(c.Request.Context()).Warn()
		default:
			event = zerolog.Ctx(c.Request.Context()).Info()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Recovery panic转为50000响应并记录堆栈
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Bytes("stack", debug.Stack()).
			Msg("请求处理panic")
		response.Error(c, apperrors.ErrInternal)
		c.Abort()
	})
}
