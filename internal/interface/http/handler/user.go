package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// UserHandler 账户HTTP处理器
type UserHandler struct {
	registerUseCase  *appuser.RegisterUseCase
	loginUseCase     *appuser.LoginUseCase
	logoutUseCase    *appuser.LogoutUseCase
	listUsersUseCase *appuser.ListUsersUseCase
}

// NewUserHandler 创建账户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	listUsersUseCase *appuser.ListUsersUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase:  registerUseCase,
		loginUseCase:     loginUseCase,
		logoutUseCase:    logoutUseCase,
		listUsersUseCase: listUsersUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册普通用户，用户名区分大小写且唯一
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=appuser.UserInfo}
// @Failure      200 {object} response.Response "40003 用户名已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Login 用户登录
// @Summary      用户登录
// @Description  返回访问Token，is_admin决定客户端进入的视图
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse}
// @Failure      200 {object} response.Response "40103 用户名或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Logout 登出
// @Summary      登出
// @Description  清空购物车并使当前Token失效
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.ListData{list=[]appuser.UserInfo}}
// @Router       /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listUsersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithList(c, users, len(users))
}
