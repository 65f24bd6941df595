// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/logger"
)

// TeamHandler 团队与投资人成员处理器
type TeamHandler struct {
	memberRepo  repository.MemberRepository
	profileRepo repository.ProfileRepository
	startupRepo repository.StartupRepository
}

// NewTeamHandler 创建团队成员处理器
func NewTeamHandler(
	memberRepo repository.MemberRepository,
	profileRepo repository.ProfileRepository,
	startupRepo repository.StartupRepository,
) *TeamHandler {
	return &TeamHandler{
		memberRepo:  memberRepo,
		profileRepo: profileRepo,
		startupRepo: startupRepo,
	}
}

// Members 获取项目成员
// @Summary 获取团队成员列表
// @Description 返回项目全部成员, 合并用户档案中的邮箱与姓名, 档案缺失时联系字段为空
// @Tags Team
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.MemberResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/members [get]
func (h *TeamHandler) Members(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireMember(c, h.memberRepo, startupID, "Not a member"); member == nil {
		return
	}

	members, err := h.memberRepo.ListByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to list members", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list members")
		return
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	profiles, err := h.profileRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		logger.Error(ctx, "failed to list member profiles", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list members")
		return
	}
	profileByID := make(map[string]*entity.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	result := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, dto.ToMemberResponse(m, profileByID[m.UserID]))
	}
	dto.Success(c, result)
}

// RemoveMember 移除团队成员
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	userID := middleware.GetUserIDFromGin(c)
	targetUserID := c.Param("userID")

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can remove members"); member == nil {
		return
	}
	if targetUserID == userID {
		dto.BadRequest(c, "Cannot remove yourself")
		return
	}

	if err := h.memberRepo.Delete(ctx, startupID, targetUserID); err != nil {
		logger.Error(ctx, "failed to remove member", err, "startup_id", startupID, "target_user_id", targetUserID)
		dto.InternalError(c, "failed to remove member")
		return
	}
	dto.Success(c, gin.H{"success": true})
}

// UpdateRole 更新成员角色
// 创始人角色不可变更, 目标角色限 manager/member/investor
func (h *TeamHandler) UpdateRole(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	targetUserID := c.Param("userID")

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can change roles"); member == nil {
		return
	}

	target, err := h.memberRepo.GetByStartupAndUser(ctx, startupID, targetUserID)
	if err != nil {
		logger.Error(ctx, "failed to get member", err, "startup_id", startupID, "target_user_id", targetUserID)
		dto.InternalError(c, "failed to get member")
		return
	}
	if target == nil {
		dto.NotFound(c, "Member not found")
		return
	}
	if target.IsFounder() {
		dto.BadRequest(c, "Cannot change founder role")
		return
	}

	role := entity.MemberRole(req.Role)
	if !entity.IsAssignableRole(role) {
		dto.BadRequest(c, "Invalid role.")
		return
	}

	if err := h.memberRepo.UpdateRole(ctx, startupID, targetUserID, role); err != nil {
		logger.Error(ctx, "failed to update member role", err, "startup_id", startupID, "target_user_id", targetUserID)
		dto.InternalError(c, "failed to update member role")
		return
	}
	dto.Success(c, dto.UpdateMemberRoleResponse{Success: true, Role: role})
}

// InviteCode 获取项目邀请码
func (h *TeamHandler) InviteCode(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can view invite code"); member == nil {
		return
	}

	startup, err := h.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get startup", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get invite code")
		return
	}
	code := ""
	if startup != nil {
		code = startup.InviteCode
	}
	dto.Success(c, dto.InviteCodeResponse{InviteCode: code})
}

// RegenerateInvite 重新生成邀请码
// @Summary 重新生成邀请码
// @Description 生成新的 8 位邀请码并使旧码失效, 仅创始人可操作
// @Tags Team
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.InviteCodeResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/regenerate-invite [post]
func (h *TeamHandler) RegenerateInvite(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can regenerate invite"); member == nil {
		return
	}

	code := entity.NewInviteCode()
	if err := h.startupRepo.UpdateInviteCode(ctx, startupID, code); err != nil {
		logger.Error(ctx, "failed to update invite code", err, "startup_id", startupID)
		dto.InternalError(c, "failed to regenerate invite code")
		return
	}
	dto.Success(c, dto.InviteCodeResponse{InviteCode: code})
}

// Investors 获取项目投资人
func (h *TeamHandler) Investors(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can view investors"); member == nil {
		return
	}

	members, err := h.memberRepo.ListByStartupAndRole(ctx, startupID, entity.MemberRoleInvestor)
	if err != nil {
		logger.Error(ctx, "failed to list investors", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list investors")
		return
	}
	if len(members) == 0 {
		dto.Success(c, dto.InvestorListResponse{
			Investors:      []dto.InvestorMember{},
			PendingInvites: []dto.InvestorMember{},
		})
		return
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	profiles, err := h.profileRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		logger.Error(ctx, "failed to list investor profiles", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list investors")
		return
	}
	profileByID := make(map[string]*entity.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	investors := make([]dto.InvestorMember, 0, len(members))
	for _, m := range members {
		inv := dto.InvestorMember{
			ID:       m.ID,
			UserID:   m.UserID,
			JoinedAt: m.JoinedAt,
		}
		if p := profileByID[m.UserID]; p != nil {
			inv.FullName = p.FullName
			inv.Email = p.Email
		}
		investors = append(investors, inv)
	}
	dto.Success(c, dto.InvestorListResponse{
		Investors:      investors,
		PendingInvites: []dto.InvestorMember{},
	})
}

// InviteInvestor 邀请投资人
// 返回项目邀请码, 投资人通过 join 接口加入
func (h *TeamHandler) InviteInvestor(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can invite investors"); member == nil {
		return
	}

	startup, err := h.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get startup", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get invite code")
		return
	}
	code := ""
	if startup != nil {
		code = startup.InviteCode
	}
	dto.Success(c, dto.InviteCodeResponse{InviteCode: code})
}

// RemoveInvestor 移除投资人
func (h *TeamHandler) RemoveInvestor(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	targetUserID := c.Param("userID")

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can remove investors"); member == nil {
		return
	}

	if err := h.memberRepo.DeleteByRole(ctx, startupID, targetUserID, entity.MemberRoleInvestor); err != nil {
		logger.Error(ctx, "failed to remove investor", err, "startup_id", startupID, "target_user_id", targetUserID)
		dto.InternalError(c, "failed to remove investor")
		return
	}
	dto.Success(c, gin.H{"success": true})
}
