package user

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. 注册只创建普通用户，管理员仅来自初始化
// 2. 用户名唯一由数据库唯一索引保证，并发注册同名只有一个成功
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("user_id", u.ID).Str("username", u.Username).Msg("用户注册成功")
	info := toUserInfo(u)
	return &info, nil
}
