package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// Manager JWT管理器
// 设计说明：
// 1. 只签发Access Token，登出通过黑名单失效
// 2. 每次登录生成新的会话ID写入jti，购物车与黑名单都按会话ID隔离
type Manager struct {
	secret            string        // JWT签名密钥
	accessTokenExpire time.Duration // Access Token有效期
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:            secret,
		accessTokenExpire: accessTokenExpire,
	}
}

// Claims 自定义JWT Claims
// 学习要点：
// 1. 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、jti等）
// 2. IsAdmin在登录时确定，会话期间不变
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// SessionID 会话ID（jti）
func (c *Claims) SessionID() string {
	return c.ID
}

// Token 登录返回的令牌
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // 秒
	SessionID   string `json:"-"`
}

// TTL Access Token有效期，会话存储的过期时间与之一致
func (m *Manager) TTL() time.Duration {
	return m.accessTokenExpire
}

// GenerateToken 为一次登录签发Token
func (m *Manager) GenerateToken(userID uint, username string, isAdmin bool) (*Token, error) {
	now := time.Now()
	sessionID := uuid.NewString()

	claims := Claims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "bookstore-lite",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Access Token失败")
	}

	return &Token{
		AccessToken: signed,
		ExpiresIn:   int64(m.accessTokenExpire.Seconds()),
		SessionID:   sessionID,
	}, nil
}

// ParseToken 解析并验证Token
// 学习要点：
// 1. 验证签名算法，拒绝alg=none等伪造
// 2. jwt/v5返回包装后的错误，需要用errors.Is判断过期
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
