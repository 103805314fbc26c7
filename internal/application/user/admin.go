package user

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// ListUsersUseCase 用户列表（管理员）
type ListUsersUseCase struct {
	userService user.Service
}

// NewListUsersUseCase 创建用户列表用例
func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

// Execute 返回全部用户，角色为Admin或Regular User
func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]UserInfo, error) {
	users, err := uc.userService.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, len(users))
	for i, u := range users {
		infos[i] = toUserInfo(u)
	}
	return infos, nil
}

// BootstrapUseCase 首次初始化管理员
// 服务启动和bookstorectl init都会执行，重复执行不会产生第二个管理员
type BootstrapUseCase struct {
	userService user.Service
	seed        user.AdminSeed
}

// NewBootstrapUseCase 创建初始化用例
func NewBootstrapUseCase(userService user.Service, seed user.AdminSeed) *BootstrapUseCase {
	return &BootstrapUseCase{userService: userService, seed: seed}
}

// Execute 返回本次是否写入了管理员
func (uc *BootstrapUseCase) Execute(ctx context.Context) (bool, error) {
	created, err := uc.userService.Bootstrap(ctx, uc.seed)
	if err != nil {
		return false, err
	}

	if created {
		log.Ctx(ctx).Info().Str("username", uc.seed.Username).Msg("已创建初始管理员")
	}
	return created, nil
}
