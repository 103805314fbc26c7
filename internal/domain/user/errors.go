package user

import (
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

var (
	ErrUserNotFound       = apperrors.ErrUserNotFound
	ErrUsernameDuplicate  = apperrors.ErrUsernameDuplicate
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	ErrMissingFields      = apperrors.New(apperrors.ErrCodeInvalidParams, "用户名、邮箱和密码不能为空")
	ErrInvalidEmail       = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrPasswordTooLong    = apperrors.Newf(apperrors.ErrCodeInvalidParams, "密码不能超过%d字节", MaxPasswordBytes)

	// ErrAdminSeedConflict 管理员用户名已被普通用户占用，初始化无法完成
	ErrAdminSeedConflict = apperrors.New(apperrors.ErrCodeDuplicateEntry, "管理员用户名已被普通用户占用，请修改account.admin_username")
)
