// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/application/insight"
	"startupops-api/internal/application/pitch"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/internal/render/pptx"
	"startupops-api/pkg/errors"
	"startupops-api/pkg/logger"
)

// AIHandler AI 生成处理器
type AIHandler struct {
	insightService *insight.Service
	pitchService   *pitch.Service
	memberRepo     repository.MemberRepository
}

// NewAIHandler 创建 AI 生成处理器
func NewAIHandler(
	insightService *insight.Service,
	pitchService *pitch.Service,
	memberRepo repository.MemberRepository,
) *AIHandler {
	return &AIHandler{
		insightService: insightService,
		pitchService:   pitchService,
		memberRepo:     memberRepo,
	}
}

// Insights 生成运营洞察
// @Summary 生成运营洞察
// @Description 聚合项目运营数据并调用模型生成洞察文本
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.InsightRequest true "生成参数"
// @Success 200 {object} dto.Response[dto.InsightResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/insights [post]
func (h *AIHandler) Insights(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireMember(c, h.memberRepo, req.StartupID, "Not a member") == nil {
		return
	}

	result, err := h.insightService.Generate(ctx, &insight.GenerateParams{
		StartupID:    req.StartupID,
		UserID:       userID,
		PromptType:   req.PromptType,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		logger.Error(ctx, "failed to generate insights", err, "startup_id", req.StartupID)
		respondGenerationError(c, err)
		return
	}

	dto.Success(c, dto.InsightResponse{
		Insights:   result.Insights,
		PromptType: result.PromptType,
	})
}

// Pitch 生成路演文稿
// @Summary 生成路演文稿
// @Description 生成结构化幻灯片内容并返回 JSON 表示
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.PitchRequest true "生成参数"
// @Success 200 {object} dto.Response[dto.PitchResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/pitch [post]
func (h *AIHandler) Pitch(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.PitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireMember(c, h.memberRepo, req.StartupID, "Not a member") == nil {
		return
	}

	result, err := h.pitchService.Generate(ctx, &pitch.GenerateParams{
		StartupID:    req.StartupID,
		UserID:       userID,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		logger.Error(ctx, "failed to generate pitch deck", err, "startup_id", req.StartupID)
		respondGenerationError(c, err)
		return
	}

	dto.Success(c, dto.PitchResponse{
		Pitch:       result.Content,
		StartupName: result.StartupName,
		Slides:      result.Deck.Slides,
		Format:      "ppt",
	})
}

// PitchDownload 生成路演文稿并下载 PPTX 文件
func (h *AIHandler) PitchDownload(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.PitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireMember(c, h.memberRepo, req.StartupID, "Not a member") == nil {
		return
	}

	result, err := h.pitchService.Download(ctx, &pitch.GenerateParams{
		StartupID:    req.StartupID,
		UserID:       userID,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		if appErr := errors.AsAppError(err); appErr.Code == errors.CodeRenderFailed {
			logger.Error(ctx, "failed to render presentation", err, "startup_id", req.StartupID)
			dto.InternalError(c, "Error generating presentation")
			return
		}
		logger.Error(ctx, "failed to generate pitch deck", err, "startup_id", req.StartupID)
		respondGenerationError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, pptx.ContentType, result.Data)
}

// respondGenerationError 将生成失败映射为带原因的 500 响应
func respondGenerationError(c *gin.Context, err error) {
	if appErr := errors.AsAppError(err); appErr.Code == errors.CodeGenerationFailed && appErr.Err != nil {
		dto.InternalError(c, "AI service error: "+appErr.Err.Error())
		return
	}
	dto.InternalError(c, "AI service error")
}
