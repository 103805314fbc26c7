// Package metrics 基于Prometheus的指标收集
//
// 三类指标：
//   - HTTP：请求数、耗时、处理中请求数（中间件记录）
//   - 业务：订单提交、结账、结账失败原因、低库存告警
//   - 基础设施：熔断器状态、事件发布
//
// 指标通过promauto注册到默认Registry，由/metrics端点暴露。
// Record*系列函数内部会先调用InitMetrics，业务代码不需要关心初始化顺序。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，不是原始URL）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// OrdersSubmittedTotal 提交的订单行数（购物车每本书一行）
	OrdersSubmittedTotal prometheus.Counter

	// OrdersCheckedOutTotal 结账成功的订单数
	OrdersCheckedOutTotal prometheus.Counter

	// CheckoutFailuresTotal 结账失败数
	// 标签：reason（stock_mismatch/already_processed/not_found/internal）
	CheckoutFailuresTotal *prometheus.CounterVec

	// CheckoutDuration 结账事务耗时
	CheckoutDuration prometheus.Histogram

	// LowStockAlertsTotal 结账后触发的低库存提醒次数
	LowStockAlertsTotal prometheus.Counter

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// MessagesPublishedTotal 事件发布数
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标，可重复调用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		})

		OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookstore_orders_submitted_total",
			Help: "提交的订单行数",
		})

		OrdersCheckedOutTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookstore_orders_checked_out_total",
			Help: "结账成功的订单数",
		})

		CheckoutFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookstore_checkout_failures_total",
				Help: "结账失败数",
			},
			[]string{"reason"},
		)

		// SQLite单连接下结账是串行的，桶从1ms开始
		CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookstore_checkout_duration_seconds",
			Help:    "结账事务耗时（秒）",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		})

		LowStockAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookstore_low_stock_alerts_total",
			Help: "低库存提醒次数",
		})

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "事件发布总数",
			},
			[]string{"exchange", "routing_key"},
		)
	})
}

// RecordHTTPRequest 记录一次HTTP请求
func RecordHTTPRequest(method, path, status string, seconds float64) {
	InitMetrics()
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordOrdersSubmitted 记录一次购物车提交产生的订单行数
func RecordOrdersSubmitted(n int) {
	InitMetrics()
	OrdersSubmittedTotal.Add(float64(n))
}

// RecordCheckout 记录一次成功结账
func RecordCheckout(seconds float64, lowStock bool) {
	InitMetrics()
	OrdersCheckedOutTotal.Inc()
	CheckoutDuration.Observe(seconds)
	if lowStock {
		LowStockAlertsTotal.Inc()
	}
}

// RecordCheckoutFailure 记录结账失败原因
func RecordCheckoutFailure(reason string) {
	InitMetrics()
	CheckoutFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordCircuitBreaker 记录熔断器状态与调用结果
func RecordCircuitBreaker(name string, state int, result string) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordMessagePublished 记录一次事件发布
func RecordMessagePublished(exchange, routingKey string) {
	InitMetrics()
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
}
