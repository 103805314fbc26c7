// Package tracing 基于OpenTelemetry的链路追踪
//
// 书店是单进程应用，追踪主要用于观察一次请求内各用例与事务的耗时：
//
//	HTTP POST /admin/orders/:id/checkout
//	└─ order.Checkout
//	   └─ gorm事务（查询订单、锁定图书、扣减库存、更新状态）
//
// tracing.enabled=false时不初始化Provider，otel全局默认是noop实现，
// StartSpan等函数照常可用且没有开销。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName 书店内部Span使用的Tracer名称
const TracerName = "github.com/xiebiao/bookstore-lite"

// InitTracer 初始化全局TracerProvider，导出到OTLP gRPC端点（如 localhost:4317）
// 返回的shutdown必须在退出前调用，刷新未发送的Span
func InitTracer(ctx context.Context, serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// StartSpan 使用全局Provider创建Span，ctx中有父Span时自动成为子Span
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, spanName, opts...)
}

// EndSpan 记录错误（如有）并结束Span
//
//	ctx, span := tracing.StartSpan(ctx, "order.Checkout")
//	defer func() { tracing.EndSpan(span, err) }()
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ExtractTraceID 当前TraceID，没有有效Span时返回空串（用于日志关联）
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
