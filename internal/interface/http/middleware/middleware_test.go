package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
	"github.com/xiebiao/bookstore-lite/pkg/response"
	"github.com/xiebiao/bookstore-lite/pkg/tracing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) (int, response.Response) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), RequestLogger())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	status, body := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.ErrCodeInternal, body.Code)
}

func TestRequestLogger_TraceID(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	var handlerTraceID string
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/books/:id", func(c *gin.Context) {
		handlerTraceID = tracing.ExtractTraceID(c.Request.Context())
		response.Success(c, nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/7", nil))

	traceID := w.Header().Get(TraceIDHeader)
	assert.Len(t, traceID, 32)
	assert.Equal(t, traceID, handlerTraceID, "用例拿到的是同一条链路")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /books/:id", spans[0].Name())
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("middleware-test", time.Hour)
	blacklist := memory.NewTokenBlacklist(10, time.Hour)
	auth := NewAuthMiddleware(manager, blacklist)

	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		response.Success(c, GetSession(c).Username)
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		response.Success(c, nil)
	})
	r.GET("/cart", auth.RequireAuth(), auth.RequireRegular(), func(c *gin.Context) {
		response.Success(c, nil)
	})

	request := func(path, token string) response.Response {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		_, body := serve(r, req)
		return body
	}

	alice, err := manager.GenerateToken(2, "alice", false)
	require.NoError(t, err)
	admin, err := manager.GenerateToken(1, "library", true)
	require.NoError(t, err)

	body := request("/me", "Bearer "+alice.AccessToken)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "alice", body.Data)

	assert.Equal(t, apperrors.ErrCodeUnauthorized, request("/me", "").Code)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, request("/me", "Token "+alice.AccessToken).Code)
	assert.Equal(t, apperrors.ErrCodeForbidden, request("/admin", "Bearer "+alice.AccessToken).Code)
	assert.Equal(t, 0, request("/admin", "Bearer "+admin.AccessToken).Code)
	assert.Equal(t, apperrors.ErrCodeForbidden, request("/cart", "Bearer "+admin.AccessToken).Code)

	claims, err := manager.ParseToken(alice.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.SessionID()))
	assert.Equal(t, apperrors.ErrCodeTokenExpired, request("/me", "Bearer "+alice.AccessToken).Code)
}
