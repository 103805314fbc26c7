package user

import (
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// UserInfo 用户信息（不含密码）
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}

func toUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role(),
		IsAdmin:  u.IsAdmin,
	}
}
