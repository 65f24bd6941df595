// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/logger"
)

// historyListLimit 历史列表单次返回的最大条数
const historyListLimit = 50

// HistoryHandler AI 生成历史处理器
type HistoryHandler struct {
	historyRepo repository.HistoryRepository
	memberRepo  repository.MemberRepository
}

// NewHistoryHandler 创建 AI 生成历史处理器
func NewHistoryHandler(historyRepo repository.HistoryRepository, memberRepo repository.MemberRepository) *HistoryHandler {
	return &HistoryHandler{
		historyRepo: historyRepo,
		memberRepo:  memberRepo,
	}
}

// List 获取项目的生成历史
// @Summary 获取生成历史
// @Description 返回项目的 AI 生成历史, 按时间倒序, 正文截断为预览
// @Tags AI
// @Accept json
// @Produce json
// @Param id path string true "项目 ID"
// @Param ai_type query string false "类型过滤, 逗号分隔 (insight,pitch)"
// @Success 200 {object} dto.Response[dto.HistoryListResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/ai/history/{id} [get]
func (h *HistoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	var types []entity.HistoryType
	if raw := c.Query("ai_type"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, entity.HistoryType(t))
			}
		}
	}

	records, err := h.historyRepo.ListByStartup(ctx, startupID, types, historyListLimit)
	if err != nil {
		logger.Error(ctx, "failed to list history", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list history")
		return
	}

	dto.Success(c, dto.ToHistoryListResponse(records))
}

// Get 获取单条生成历史
func (h *HistoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	historyID := c.Param("historyID")

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	record, err := h.historyRepo.GetByStartupAndID(ctx, startupID, historyID)
	if err != nil {
		logger.Error(ctx, "failed to get history item", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get history item")
		return
	}
	if record == nil {
		dto.NotFound(c, "History item not found")
		return
	}

	dto.Success(c, dto.ToHistoryDetail(record))
}

// Save 保存一条生成历史
func (h *HistoryHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireMember(c, h.memberRepo, req.StartupID, "Not a member") == nil {
		return
	}

	record := entity.NewHistoryRecord(
		req.StartupID,
		entity.HistoryType(req.Type),
		req.Subtype,
		req.Content,
		userID,
		entity.HistoryMetadata(req.Metadata),
	)

	if err := h.historyRepo.Create(ctx, record); err != nil {
		logger.Error(ctx, "failed to save history", err, "startup_id", req.StartupID)
		dto.InternalError(c, "Failed to save history")
		return
	}

	dto.Success(c, dto.SaveHistoryResponse{
		ID:      record.ID,
		Message: "History saved",
	})
}

// Delete 删除一条生成历史
func (h *HistoryHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	historyID := c.Param("historyID")

	record, err := h.historyRepo.GetByID(ctx, historyID)
	if err != nil {
		logger.Error(ctx, "failed to get history item", err, "history_id", historyID)
		dto.InternalError(c, "failed to delete history")
		return
	}
	if record == nil {
		dto.NotFound(c, "History item not found")
		return
	}

	if requireMember(c, h.memberRepo, record.StartupID, "Not a member") == nil {
		return
	}

	if err := h.historyRepo.Delete(ctx, historyID); err != nil {
		logger.Error(ctx, "failed to delete history", err, "history_id", historyID)
		dto.InternalError(c, "failed to delete history")
		return
	}

	dto.Success(c, gin.H{"message": "History deleted"})
}
