package user

import (
	"context"
	"errors"
	"strings"
)

// AdminSeed 首次初始化时写入的管理员
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// Service 账户领域服务接口
type Service interface {
	// Register 注册普通用户
	// 业务规则:字段必填,邮箱粗略校验,用户名唯一(区分大小写)
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Login 校验用户名和密码,返回用户(含管理员标识)
	// 用户名与注册时一样去掉首尾空白;用户不存在与密码错误统一返回ErrInvalidCredentials
	Login(ctx context.Context, username, password string) (*User, error)

	// ListUsers 全部用户
	ListUsers(ctx context.Context) ([]*User, error)

	// Bootstrap 没有管理员时写入一个,重复调用不会产生重复记录
	// 返回是否本次写入;用户名被普通用户占用时返回ErrAdminSeedConflict
	Bootstrap(ctx context.Context, seed AdminSeed) (bool, error)
}

type service struct {
	repo   Repository
	hasher PasswordHasher
}

// NewService 创建账户领域服务
func NewService(repo Repository, hasher PasswordHasher) Service {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	// 1. 构造实体(参数校验)
	u, err := NewUser(username, email, password)
	if err != nil {
		return nil, err
	}

	// 2. 密码处理
	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u.Password = stored

	// 3. 持久化(唯一索引兜底并发注册)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Bootstrap(ctx context.Context, seed AdminSeed) (bool, error) {
	admins, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	if len(seed.Password) > MaxPasswordBytes {
		return false, ErrPasswordTooLong
	}
	stored, err := s.hasher.Hash(seed.Password)
	if err != nil {
		return false, err
	}

	created, err := s.repo.CreateIfAbsent(ctx, &User{
		Username: strings.TrimSpace(seed.Username),
		Email:    seed.Email,
		Password: stored,
		IsAdmin:  true,
	})
	if err != nil {
		return false, err
	}
	if created {
		return true, nil
	}

	// 并发初始化时同名记录可能是刚写入的管理员,再数一次
	admins, err = s.repo.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}
	return false, ErrAdminSeedConflict
}
