package user

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/domain/cart"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 校验用户名密码（领域服务）
// 2. 签发JWT，jti即本次会话ID
// 3. 购物车在第一次加购时才创建，登录不写会话存储
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{userService: userService, jwtManager: jwtManager}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        UserInfo `json:"user"`
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"` // 秒
}

// Execute 执行登录
// 用户不存在与密码错误返回同一个错误，不暴露用户名是否存在
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		log.Ctx(ctx).Info().Str("username", req.Username).Msg("登录失败")
		return nil, err
	}

	token, err := uc.jwtManager.GenerateToken(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("username", u.Username).Bool("is_admin", u.IsAdmin).Str("session_id", token.SessionID).Msg("登录成功")
	return &LoginResponse{
		User:        toUserInfo(u),
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
// 清空会话购物车，并将会话ID加入黑名单直到Token自然过期
type LogoutUseCase struct {
	carts     cart.Store
	blacklist cart.TokenBlacklist
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(carts cart.Store, blacklist cart.TokenBlacklist) *LogoutUseCase {
	return &LogoutUseCase{carts: carts, blacklist: blacklist}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, session cart.Session) error {
	if err := uc.carts.Clear(ctx, session.ID); err != nil {
		return err
	}
	if err := uc.blacklist.Revoke(ctx, session.ID); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Str("username", session.Username).Str("session_id", session.ID).Msg("已登出")
	return nil
}
