package user

import (
	"context"
)

// Repository 用户仓储接口
type Repository interface {
	// Create 创建用户,用户名重复返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByUsername 精确匹配用户名
	FindByUsername(ctx context.Context, username string) (*User, error)

	// List 按ID升序返回全部用户
	List(ctx context.Context) ([]*User, error)

	// Count 用户总数
	Count(ctx context.Context) (int64, error)

	// CountAdmins 管理员数量
	CountAdmins(ctx context.Context) (int64, error)

	// CreateIfAbsent 用户名不存在时插入,已存在时什么也不做;返回是否插入
	CreateIfAbsent(ctx context.Context, user *User) (bool, error)
}
