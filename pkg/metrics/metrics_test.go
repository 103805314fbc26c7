package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	first := HTTPRequestsTotal

	require.NotPanics(t, InitMetrics, "重复注册会panic")
	assert.Same(t, first, HTTPRequestsTotal)
	assert.NotNil(t, CheckoutDuration)
	assert.NotNil(t, CircuitBreakerState)
}

func TestRecordCheckout(t *testing.T) {
	InitMetrics()
	before := counterValue(t, OrdersCheckedOutTotal)
	alertsBefore := counterValue(t, LowStockAlertsTotal)

	RecordCheckout(0.002, false)
	RecordCheckout(0.003, true)

	assert.Equal(t, before+2, counterValue(t, OrdersCheckedOutTotal))
	assert.Equal(t, alertsBefore+1, counterValue(t, LowStockAlertsTotal))
}

func TestRecordCheckoutFailure(t *testing.T) {
	InitMetrics()
	c := CheckoutFailuresTotal.WithLabelValues("stock_mismatch")
	before := counterValue(t, c)

	RecordCheckoutFailure("stock_mismatch")
	RecordCheckoutFailure("already_processed")

	assert.Equal(t, before+1, counterValue(t, c))
}

func TestRecordHTTPRequest(t *testing.T) {
	InitMetrics()
	c := HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/books", "200")
	before := counterValue(t, c)

	RecordHTTPRequest("GET", "/api/v1/books", "200", 0.01)
	RecordHTTPRequest("GET", "/api/v1/books", "200", 0.02)
	RecordHTTPRequest("POST", "/api/v1/books", "200", 0.02)

	assert.Equal(t, before+2, counterValue(t, c))
}

func TestRecordCircuitBreaker(t *testing.T) {
	RecordCircuitBreaker("events", 1, "rejected")

	m := &dto.Metric{}
	require.NoError(t, CircuitBreakerState.WithLabelValues("events").Write(m))
	assert.Equal(t, float64(1), m.GetGauge().GetValue())
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}
