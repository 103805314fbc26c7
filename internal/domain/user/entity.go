package user

import (
	"strings"
)

// 角色展示文案
const (
	RoleAdmin   = "Admin"
	RoleRegular = "Regular User"
)

// MaxPasswordBytes 密码最大字节数(bcrypt只接受72字节以内的输入)
const MaxPasswordBytes = 72

// User 用户实体
// 说明:
// 1. Username是唯一标识(区分大小写),订单通过用户名而非ID关联用户
// 2. Password保存的是PasswordHasher.Hash的结果,具体格式取决于密码模式
type User struct {
	ID       uint
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// NewUser 创建普通用户(工厂方法)
// 业务规则:用户名、邮箱、密码必填;邮箱只做粗略校验(包含@和.);
// 密码按字节计长度,中文每个字占3字节
func NewUser(username, email, password string) (*User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !looksLikeEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	return &User{
		Username: username,
		Email:    email,
		Password: password,
	}, nil
}

// Role 根据管理员标识返回角色文案
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleRegular
}

func looksLikeEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
