// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/infrastructure/persistence/redis"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/logger"
)

// StartupHandler 创业项目处理器
type StartupHandler struct {
	startupRepo repository.StartupRepository
	memberRepo  repository.MemberRepository
	tx          repository.Transactor
	cache       *redis.Cache
}

// NewStartupHandler 创建创业项目处理器
func NewStartupHandler(
	startupRepo repository.StartupRepository,
	memberRepo repository.MemberRepository,
	tx repository.Transactor,
	cache *redis.Cache,
) *StartupHandler {
	return &StartupHandler{
		startupRepo: startupRepo,
		memberRepo:  memberRepo,
		tx:          tx,
		cache:       cache,
	}
}

// Create 创建项目
// @Summary 创建创业项目
// @Description 创建项目并将当前用户加入为创始成员, investor 角色创建组合容器项目
// @Tags Startups
// @Accept json
// @Produce json
// @Param body body dto.CreateStartupRequest true "项目信息"
// @Success 200 {object} dto.Response[dto.StartupWithRole]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/startups [post]
func (h *StartupHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var startup *entity.Startup
	if req.InitialRole == string(entity.MemberRoleInvestor) {
		// 投资人注册时创建组合容器项目, 挂靠在现有的"当前项目"模型上
		founderName := "My"
		if principal := middleware.GetPrincipalFromGin(c); principal != nil && principal.UserMetadata != nil {
			if name, ok := principal.UserMetadata["full_name"].(string); ok && name != "" {
				founderName = name
			}
		}
		startup = entity.NewPortfolioStartup(userID, founderName)
		if req.Name != "" {
			startup.Name = req.Name
		}
		startup.Website = req.Website
	} else {
		startup = entity.NewStartup(req.Name, req.Description, req.Industry, entity.StartupStage(req.Stage), req.Website, userID)
	}

	role := entity.MemberRole(req.InitialRole)
	if role == "" {
		role = entity.MemberRoleFounder
	}

	err := h.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := h.startupRepo.Create(txCtx, startup); err != nil {
			return err
		}
		return h.memberRepo.Create(txCtx, entity.NewStartupMember(startup.ID, userID, role))
	})
	if err != nil {
		logger.Error(ctx, "failed to create startup", err)
		dto.InternalError(c, "Failed to create startup record")
		return
	}

	dto.Success(c, dto.ToStartupWithRole(startup, role))
}

// List 获取当前用户的项目列表
// @Summary 获取项目列表
// @Description 返回当前用户参与的全部项目及其角色
// @Tags Startups
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[[]dto.StartupWithRole]
// @Router /api/startups [get]
func (h *StartupHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	memberships, err := h.memberRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to list memberships", err)
		dto.InternalError(c, "failed to list startups")
		return
	}
	if len(memberships) == 0 {
		dto.Success(c, []*dto.StartupWithRole{})
		return
	}

	ids := make([]string, 0, len(memberships))
	roleByStartup := make(map[string]entity.MemberRole, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.StartupID)
		roleByStartup[m.StartupID] = m.Role
	}

	startups, err := h.startupRepo.ListByIDs(ctx, ids)
	if err != nil {
		logger.Error(ctx, "failed to list startups", err)
		dto.InternalError(c, "failed to list startups")
		return
	}

	items := make([]*dto.StartupWithRole, 0, len(startups))
	for _, s := range startups {
		role, ok := roleByStartup[s.ID]
		if !ok {
			role = entity.MemberRoleMember
		}
		items = append(items, dto.ToStartupWithRole(s, role))
	}

	dto.Success(c, items)
}

// Get 获取项目详情
func (h *StartupHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	member := requireMember(c, h.memberRepo, startupID, "Not a member of this startup")
	if member == nil {
		return
	}

	startup, err := h.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get startup", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get startup")
		return
	}
	if startup == nil {
		dto.NotFound(c, "Startup not found")
		return
	}

	dto.Success(c, dto.ToStartupWithRole(startup, member.Role))
}

// Update 更新项目资料
func (h *StartupHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	var req dto.UpdateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireFounder(c, h.memberRepo, startupID, "Only founders can update startup") == nil {
		return
	}

	startup, err := h.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get startup", err, "startup_id", startupID)
		dto.InternalError(c, "failed to update startup")
		return
	}
	if startup == nil {
		dto.Success[*entity.Startup](c, nil)
		return
	}

	req.ApplyToStartup(startup)
	startup.UpdatedAt = time.Now()

	if err := h.startupRepo.Update(ctx, startup); err != nil {
		logger.Error(ctx, "failed to update startup", err, "startup_id", startupID)
		dto.InternalError(c, "failed to update startup")
		return
	}

	// 投资人浏览卡片缓存随资料变更失效
	if h.cache != nil {
		if err := h.cache.InvalidateStartup(ctx, startupID); err != nil {
			logger.Warn(ctx, "failed to invalidate startup cache", "startup_id", startupID, "error", err.Error())
		}
	}

	dto.Success(c, startup)
}

// Join 通过邀请码加入项目
// @Summary 加入项目
// @Description 校验邀请码与团队人数上限后以 member 角色加入
// @Tags Startups
// @Accept json
// @Produce json
// @Param body body dto.JoinStartupRequest true "邀请码"
// @Success 200 {object} dto.Response[entity.Startup]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/startups/join [post]
func (h *StartupHandler) Join(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.JoinStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	startup, err := h.startupRepo.GetByInviteCode(ctx, req.InviteCode)
	if err != nil {
		logger.Error(ctx, "failed to get startup by invite code", err)
		dto.InternalError(c, "failed to join startup")
		return
	}
	if startup == nil {
		dto.NotFound(c, "Invalid invite code")
		return
	}

	existing, err := h.memberRepo.GetByStartupAndUser(ctx, startup.ID, userID)
	if err != nil {
		logger.Error(ctx, "failed to check membership", err, "startup_id", startup.ID)
		dto.InternalError(c, "failed to join startup")
		return
	}
	if existing != nil {
		dto.BadRequest(c, "Already a member")
		return
	}

	memberCount, err := h.memberRepo.CountByStartup(ctx, startup.ID)
	if err != nil {
		logger.Error(ctx, "failed to count members", err, "startup_id", startup.ID)
		dto.InternalError(c, "failed to join startup")
		return
	}
	if memberCount >= int64(startup.TeamLimit()) {
		dto.BadRequest(c, fmt.Sprintf("Team limit reached for %s plan", startup.SubscriptionPlan))
		return
	}

	if err := h.memberRepo.Create(ctx, entity.NewStartupMember(startup.ID, userID, entity.MemberRoleMember)); err != nil {
		logger.Error(ctx, "failed to join startup", err, "startup_id", startup.ID)
		dto.InternalError(c, "failed to join startup")
		return
	}

	dto.Success(c, startup)
}
