package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

const sessionKey = "session"

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Bearer Token并验证签名与过期时间
// 2. 按会话ID（jti）检查黑名单，已登出的Token立即失效
// 3. 将会话身份注入Context，用例层不读取"当前用户"全局状态
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  cart.TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist cart.TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, blacklist: blacklist}
}

// RequireAuth 要求登录（普通用户和管理员都可以）
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperrors.ErrUnauthorized)
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, apperrors.New(apperrors.ErrCodeInvalidToken, "Token格式错误"))
			return
		}

		// 2. 验证Token
		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			abort(c, err)
			return
		}

		// 3. 检查黑名单
		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), claims.SessionID())
		if err != nil {
			abort(c, err)
			return
		}
		if revoked {
			abort(c, apperrors.New(apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录"))
			return
		}

		// 4. 注入会话，并把用户名附加到请求日志
		session := cart.Session{
			ID:       claims.SessionID(),
			UserID:   claims.UserID,
			Username: claims.Username,
			IsAdmin:  claims.IsAdmin,
		}
		c.Set(sessionKey, session)

		logger := zerolog.Ctx(c.Request.Context()).With().Str("username", session.Username).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()
	}
}

// RequireAdmin 要求管理员，需放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).IsAdmin {
			abort(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireRegular 要求普通用户（购物车、下单），需放在RequireAuth之后
func (m *AuthMiddleware) RequireRegular() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c).IsAdmin {
			abort(c, apperrors.New(apperrors.ErrCodeForbidden, "管理员不能使用购物车"))
			return
		}
		c.Next()
	}
}

// GetSession 当前会话，未登录时返回零值
func GetSession(c *gin.Context) cart.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(cart.Session); ok {
			return s
		}
	}
	return cart.Session{}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
