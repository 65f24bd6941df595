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

// FeedbackHandler 反馈处理器
type FeedbackHandler struct {
	feedbackRepo repository.FeedbackRepository
	memberRepo   repository.MemberRepository
}

// NewFeedbackHandler 创建反馈处理器
func NewFeedbackHandler(feedbackRepo repository.FeedbackRepository, memberRepo repository.MemberRepository) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepo: feedbackRepo,
		memberRepo:   memberRepo,
	}
}

// Create 创建反馈
func (h *FeedbackHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	feedback := entity.NewFeedback(startupID, req.Title, req.Content, userID)
	if req.Category != "" {
		feedback.Category = req.Category
	}
	if req.Rating != nil && *req.Rating != 0 {
		feedback.Rating = *req.Rating
	}
	if req.Source != "" {
		feedback.Source = req.Source
	}

	if err := h.feedbackRepo.Create(ctx, feedback); err != nil {
		logger.Error(ctx, "failed to create feedback", err, "startup_id", startupID)
		dto.InternalError(c, "failed to create feedback")
		return
	}

	dto.Success(c, feedback)
}

// List 获取项目反馈列表
func (h *FeedbackHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	feedbacks, err := h.feedbackRepo.ListByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to list feedback", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list feedback")
		return
	}

	dto.Success(c, feedbacks)
}
