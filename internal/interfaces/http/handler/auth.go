// Package handler 提供 HTTP 请求处理器
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/infrastructure/identity"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/errors"
	"startupops-api/pkg/logger"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	identityClient *identity.Client
	profileRepo    repository.ProfileRepository
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(identityClient *identity.Client, profileRepo repository.ProfileRepository) *AuthHandler {
	return &AuthHandler{
		identityClient: identityClient,
		profileRepo:    profileRepo,
	}
}

// Signup 注册
// @Summary 用户注册
// @Description 通过身份服务创建用户并自动确认邮箱
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "注册信息"
// @Success 200 {object} dto.Response[dto.SignupResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	principal, err := h.identityClient.AdminCreateUser(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		if appErr := errors.AsAppError(err); appErr.Code == errors.CodeEmailRegistered {
			dto.Conflict(c, "An account with this email already exists.")
			return
		}
		logger.Error(ctx, "failed to sign up user", err)
		dto.BadRequest(c, "Failed to create account")
		return
	}

	dto.Success(c, dto.SignupResponse{
		Message: "Account created",
		UserID:  principal.ID,
	})
}

// Verify 校验令牌并同步用户档案
// @Summary 校验令牌并同步档案
// @Description 档案已存在时直接返回，否则从身份信息创建
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.ProfileSyncRequest true "档案信息"
// @Success 200 {object} dto.Response[entity.Profile]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()
	principal := middleware.GetPrincipalFromGin(c)
	if principal == nil {
		dto.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.ProfileSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	existing, err := h.profileRepo.GetByID(ctx, principal.ID)
	if err != nil {
		logger.Error(ctx, "failed to get profile", err)
		dto.InternalError(c, "failed to get profile")
		return
	}
	if existing != nil {
		dto.Success(c, existing)
		return
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = principal.FullName()
	}
	profile := entity.NewProfile(principal.ID, principal.Email, fullName)
	profile.AvatarURL = principal.AvatarURL()

	if err := h.profileRepo.Create(ctx, profile); err != nil {
		logger.Error(ctx, "failed to create profile", err)
		dto.InternalError(c, "failed to create profile")
		return
	}

	dto.Success(c, profile)
}

// Me 获取当前用户档案
// @Summary 获取当前用户档案
// @Description 档案缺失时按身份信息自动创建
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[entity.Profile]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	principal := middleware.GetPrincipalFromGin(c)
	if principal == nil {
		dto.Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.profileRepo.GetByID(ctx, principal.ID)
	if err != nil {
		logger.Error(ctx, "failed to get profile", err)
		dto.InternalError(c, "failed to get profile")
		return
	}

	if profile == nil {
		profile = entity.NewProfile(principal.ID, principal.Email, principal.FullName())
		profile.AvatarURL = principal.AvatarURL()

		if err := h.profileRepo.Create(ctx, profile); err != nil {
			logger.Error(ctx, "failed to create profile", err)
			dto.InternalError(c, "failed to create profile")
			return
		}
	}

	dto.Success(c, profile)
}

// UpdateProfile 更新当前用户档案
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	principal := middleware.GetPrincipalFromGin(c)
	if principal == nil {
		dto.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	profile, err := h.profileRepo.GetByID(ctx, principal.ID)
	if err != nil {
		logger.Error(ctx, "failed to get profile", err)
		dto.InternalError(c, "failed to get profile")
		return
	}
	if profile == nil {
		dto.Success[*entity.Profile](c, nil)
		return
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	profile.UpdatedAt = time.Now()

	if err := h.profileRepo.Update(ctx, profile); err != nil {
		logger.Error(ctx, "failed to update profile", err)
		dto.InternalError(c, "failed to update profile")
		return
	}

	dto.Success(c, profile)
}
