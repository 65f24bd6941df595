// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/pkg/logger"
)

// AnalyticsHandler 运营分析处理器
type AnalyticsHandler struct {
	analyticsService *analytics.Service
	memberRepo       repository.MemberRepository
}

// NewAnalyticsHandler 创建运营分析处理器
func NewAnalyticsHandler(analyticsService *analytics.Service, memberRepo repository.MemberRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		memberRepo:       memberRepo,
	}
}

// Get 获取项目运营快照
// @Summary 获取运营分析
// @Description 聚合任务、里程碑、反馈与团队数据生成运营快照
// @Tags Analytics
// @Accept json
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} dto.Response[analytics.Snapshot]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/analytics [get]
func (h *AnalyticsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	snapshot, err := h.analyticsService.Snapshot(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to build analytics snapshot", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get analytics")
		return
	}

	dto.Success(c, snapshot)
}
