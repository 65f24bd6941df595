// Package handler 提供 HTTP 请求处理器
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/pkg/logger"
)

// MilestoneHandler 里程碑处理器
type MilestoneHandler struct {
	milestoneRepo repository.MilestoneRepository
	taskRepo      repository.TaskRepository
	memberRepo    repository.MemberRepository
}

// NewMilestoneHandler 创建里程碑处理器
func NewMilestoneHandler(
	milestoneRepo repository.MilestoneRepository,
	taskRepo repository.TaskRepository,
	memberRepo repository.MemberRepository,
) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneRepo: milestoneRepo,
		taskRepo:      taskRepo,
		memberRepo:    memberRepo,
	}
}

// Create 创建里程碑
// 新建里程碑始终处于 pending 状态
func (h *MilestoneHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	milestone := entity.NewMilestone(startupID, req.Title)
	if req.Description != "" {
		milestone.Description = req.Description
	}
	if req.TargetDate != "" {
		d, err := entity.ParseDate(req.TargetDate)
		if err != nil {
			dto.BadRequest(c, "invalid target_date: "+err.Error())
			return
		}
		milestone.TargetDate = &d
	}

	if err := h.milestoneRepo.Create(ctx, milestone); err != nil {
		logger.Error(ctx, "failed to create milestone", err, "startup_id", startupID)
		dto.InternalError(c, "failed to create milestone")
		return
	}

	dto.Success(c, milestone)
}

// List 获取项目里程碑列表
// @Summary 获取里程碑列表
// @Description 返回项目全部里程碑, 附带关联任务的完成进度
// @Tags Milestones
// @Accept json
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.MilestoneWithProgress]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/milestones [get]
func (h *MilestoneHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	milestones, err := h.milestoneRepo.ListByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to list milestones", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list milestones")
		return
	}

	counts, err := h.taskRepo.CountsByMilestone(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to count milestone tasks", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list milestones")
		return
	}

	items := make([]*dto.MilestoneWithProgress, 0, len(milestones))
	for _, m := range milestones {
		cnt := counts[m.ID]
		progress := 0
		if cnt.Total > 0 {
			progress = int(float64(cnt.Done) / float64(cnt.Total) * 100)
		}
		items = append(items, &dto.MilestoneWithProgress{
			Milestone: m,
			Progress:  progress,
			TaskCount: cnt.Total,
			TasksDone: cnt.Done,
		})
	}

	dto.Success(c, items)
}

// Update 更新里程碑
func (h *MilestoneHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	milestoneID := c.Param("id")

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	milestone, err := h.milestoneRepo.GetByID(ctx, milestoneID)
	if err != nil {
		logger.Error(ctx, "failed to get milestone", err, "milestone_id", milestoneID)
		dto.InternalError(c, "failed to update milestone")
		return
	}
	if milestone == nil {
		dto.NotFound(c, "Milestone not found")
		return
	}

	if requireMember(c, h.memberRepo, milestone.StartupID, "Not a member") == nil {
		return
	}

	if err := req.ApplyToMilestone(milestone); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}
	milestone.UpdatedAt = time.Now()

	if err := h.milestoneRepo.Update(ctx, milestone); err != nil {
		logger.Error(ctx, "failed to update milestone", err, "milestone_id", milestoneID)
		dto.InternalError(c, "failed to update milestone")
		return
	}

	dto.Success(c, milestone)
}

// Delete 删除里程碑并解除其下任务的关联
func (h *MilestoneHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	milestoneID := c.Param("id")

	milestone, err := h.milestoneRepo.GetByID(ctx, milestoneID)
	if err != nil {
		logger.Error(ctx, "failed to get milestone", err, "milestone_id", milestoneID)
		dto.InternalError(c, "failed to delete milestone")
		return
	}
	if milestone == nil {
		dto.NotFound(c, "Milestone not found")
		return
	}

	if requireMember(c, h.memberRepo, milestone.StartupID, "Not a member") == nil {
		return
	}

	if err := h.milestoneRepo.Delete(ctx, milestoneID); err != nil {
		logger.Error(ctx, "failed to delete milestone", err, "milestone_id", milestoneID)
		dto.InternalError(c, "failed to delete milestone")
		return
	}
	if err := h.taskRepo.DetachMilestone(ctx, milestoneID); err != nil {
		logger.Error(ctx, "failed to detach milestone tasks", err, "milestone_id", milestoneID)
		dto.InternalError(c, "failed to delete milestone")
		return
	}

	dto.Success(c, gin.H{"success": true})
}
