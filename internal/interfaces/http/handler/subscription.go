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

// SubscriptionHandler 订阅处理器
type SubscriptionHandler struct {
	subscriptionRepo repository.SubscriptionRepository
	startupRepo      repository.StartupRepository
	memberRepo       repository.MemberRepository
}

// NewSubscriptionHandler 创建订阅处理器
func NewSubscriptionHandler(
	subscriptionRepo repository.SubscriptionRepository,
	startupRepo repository.StartupRepository,
	memberRepo repository.MemberRepository,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionRepo: subscriptionRepo,
		startupRepo:      startupRepo,
		memberRepo:       memberRepo,
	}
}

// Get 获取项目订阅
// 订阅记录不存在时自动创建一条 free/active 订阅
// @Summary 获取项目订阅
// @Tags Subscription
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} dto.Response[entity.Subscription]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/subscription [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireMember(c, h.memberRepo, startupID, "Not a member"); member == nil {
		return
	}

	sub, err := h.subscriptionRepo.GetByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get subscription", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get subscription")
		return
	}
	if sub == nil {
		sub = entity.NewSubscription(startupID)
		if err := h.subscriptionRepo.Create(ctx, sub); err != nil {
			logger.Error(ctx, "failed to create subscription", err, "startup_id", startupID)
			dto.InternalError(c, "failed to create subscription")
			return
		}
	}
	dto.Success(c, sub)
}

// Update 更新订阅计划
// 订阅置为 active 并把计划同步到项目快照字段
func (h *SubscriptionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if member := requireFounder(c, h.memberRepo, startupID, "Only founders can manage subscription"); member == nil {
		return
	}

	plan := entity.SubscriptionPlan(req.Plan)
	existing, err := h.subscriptionRepo.GetByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get subscription", err, "startup_id", startupID)
		dto.InternalError(c, "failed to update subscription")
		return
	}
	if existing != nil {
		existing.Plan = plan
		existing.Status = "active"
		existing.UpdatedAt = time.Now()
		err = h.subscriptionRepo.Update(ctx, existing)
	} else {
		sub := entity.NewSubscription(startupID)
		sub.Plan = plan
		err = h.subscriptionRepo.Create(ctx, sub)
	}
	if err != nil {
		logger.Error(ctx, "failed to save subscription", err, "startup_id", startupID)
		dto.InternalError(c, "failed to update subscription")
		return
	}

	if err := h.startupRepo.UpdateSubscriptionPlan(ctx, startupID, plan); err != nil {
		logger.Error(ctx, "failed to sync subscription plan", err, "startup_id", startupID)
		dto.InternalError(c, "failed to update subscription")
		return
	}

	sub, err := h.subscriptionRepo.GetByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get subscription", err, "startup_id", startupID)
		dto.InternalError(c, "failed to update subscription")
		return
	}
	dto.Success(c, sub)
}
