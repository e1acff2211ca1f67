package handler

import (
	"errors"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/contract"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.SocialAccountService
}

func NewAuthHandler(authService *service.AuthService, accountService *service.SocialAccountService) *AuthHandler {
	return &AuthHandler{authService: authService, accountService: accountService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户账号
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body contract.RegisterData true "注册信息"
// @Success 201 {object} response.Response{data=contract.User} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := decodeContract[contract.RegisterData](c)
	if !ok {
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, "注册成功", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 邮箱密码登录获取 JWT Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body contract.LoginCredentials true "登录信息"
// @Success 200 {object} response.Response{data=dto.TokenData} "登录成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 401 {object} response.ErrorResponse "邮箱或密码错误"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := decodeContract[contract.LoginCredentials](c)
	if !ok {
		return
	}

	tokenData, err := h.authService.Login(req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "登录成功", tokenData)
}

// Profile 获取当前用户资料
// @Summary 获取个人资料
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=contract.User} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "获取成功", user)
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileUpdateRequest true "资料字段"
// @Success 200 {object} response.Response{data=contract.User} "更新成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(userID, &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "更新成功", user)
}

// SocialAccounts 已绑定的社交账号
// @Summary 社交账号列表
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} contract.APIResponse[contract.SocialAccount]
// @Router /auth/social-accounts [get]
func (h *AuthHandler) SocialAccounts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	accounts, total, err := h.accountService.List(userID, page, pageSize)
	if err != nil {
		internalError(c, "List social accounts", err, "获取社交账号失败")
		return
	}

	response.Paginated(c, page, pageSize, accounts, total)
}

// ConnectSocial 绑定社交账号
// @Summary 绑定社交账号
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SocialConnectRequest true "平台与令牌"
// @Success 200 {object} response.Response{data=contract.SocialAccount} "绑定成功"
// @Failure 409 {object} response.ErrorResponse "账号已被其他用户绑定"
// @Router /auth/social/connect [post]
func (h *AuthHandler) ConnectSocial(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SocialConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	account, err := h.accountService.Connect(userID, &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "绑定成功", account)
}

// DisconnectSocial 解绑社交账号
// @Summary 解绑社交账号
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Param provider path string true "平台"
// @Success 200 {object} response.Response "解绑成功"
// @Failure 404 {object} response.ErrorResponse "未绑定"
// @Router /auth/social/disconnect/{provider} [delete]
func (h *AuthHandler) DisconnectSocial(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.accountService.Disconnect(userID, c.Param("provider")); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "解绑成功", nil)
}

func handleAuthError(c *gin.Context, err error) {
	if response.SchemaError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredential):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSocialAccountNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSocialAccountTaken):
		response.Conflict(c, err.Error())
	default:
		internalError(c, "Auth operation", err, "操作失败，请稍后重试")
	}
}
