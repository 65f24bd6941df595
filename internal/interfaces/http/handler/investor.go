// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/infrastructure/persistence/redis"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/logger"
)

// 浏览卡片运营摘要的缓存时长
const investorCardTTL = 60 * time.Second

// InvestorHandler 投资人匹配处理器
type InvestorHandler struct {
	startupRepo      repository.StartupRepository
	swipeRepo        repository.SwipeRepository
	memberRepo       repository.MemberRepository
	milestoneRepo    repository.MilestoneRepository
	investmentRepo   repository.InvestmentRepository
	incomeRepo       repository.IncomeRepository
	expenseRepo      repository.ExpenseRepository
	profileRepo      repository.ProfileRepository
	analyticsService *analytics.Service
	cache            *redis.Cache
}

// NewInvestorHandler 创建投资人匹配处理器
func NewInvestorHandler(
	startupRepo repository.StartupRepository,
	swipeRepo repository.SwipeRepository,
	memberRepo repository.MemberRepository,
	milestoneRepo repository.MilestoneRepository,
	investmentRepo repository.InvestmentRepository,
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	profileRepo repository.ProfileRepository,
	analyticsService *analytics.Service,
	cache *redis.Cache,
) *InvestorHandler {
	return &InvestorHandler{
		startupRepo:      startupRepo,
		swipeRepo:        swipeRepo,
		memberRepo:       memberRepo,
		milestoneRepo:    milestoneRepo,
		investmentRepo:   investmentRepo,
		incomeRepo:       incomeRepo,
		expenseRepo:      expenseRepo,
		profileRepo:      profileRepo,
		analyticsService: analyticsService,
		cache:            cache,
	}
}

// Browse 分页浏览可投项目
// 排除当前投资人已操作过的项目, 卡片附带缓存的运营摘要
// @Summary 浏览可投项目
// @Description 分页返回尚未浏览过的项目, 附带融资总额/里程碑进度/团队规模
// @Tags Investor
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]dto.StartupCard]
// @Router /api/investor/browse [get]
func (h *InvestorHandler) Browse(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	page := dto.BindPage(c)

	result, err := h.startupRepo.ListAvailableForInvestor(ctx, userID, repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list available startups", err, "investor_id", userID)
		dto.InternalError(c, "Failed to fetch startups")
		return
	}

	cards := make([]dto.StartupCard, 0, len(result.Items))
	for _, s := range result.Items {
		cards = append(cards, dto.StartupCard{
			Startup:            s,
			StartupCardMetrics: h.cardMetrics(ctx, s.ID),
		})
	}
	dto.SuccessWithPage(c, cards, &dto.PageMeta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      int(result.Total),
		TotalPages: result.TotalPages,
	})
}

// cardMetrics 获取浏览卡片的运营摘要, 失败时返回零值摘要不阻断浏览
func (h *InvestorHandler) cardMetrics(ctx context.Context, startupID string) dto.StartupCardMetrics {
	var metrics dto.StartupCardMetrics
	raw, err := h.cache.GetOrLoadSafe(ctx, redis.BuildInvestorCardKey(startupID), investorCardTTL, func() (interface{}, error) {
		return h.loadCardMetrics(ctx, startupID)
	})
	if err != nil {
		logger.Warn(ctx, "failed to load startup card metrics", "startup_id", startupID, "error", err.Error())
		return metrics
	}
	if err := json.Unmarshal(raw, &metrics); err != nil {
		logger.Warn(ctx, "failed to decode startup card metrics", "startup_id", startupID, "error", err.Error())
	}
	return metrics
}

// loadCardMetrics 从数据库聚合浏览卡片摘要
func (h *InvestorHandler) loadCardMetrics(ctx context.Context, startupID string) (*dto.StartupCardMetrics, error) {
	totalRaised, err := h.investmentRepo.SumAmountByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}
	milestonesTotal, milestonesCompleted, err := h.milestoneRepo.CountByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}
	teamSize, err := h.memberRepo.CountByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if teamSize == 0 {
		teamSize = 1
	}
	return &dto.StartupCardMetrics{
		TotalRaised:         totalRaised,
		MilestonesTotal:     int(milestonesTotal),
		MilestonesCompleted: int(milestonesCompleted),
		TeamSize:            int(teamSize),
	}, nil
}

// Swipe 记录投资人对项目的操作
// 同一项目重复操作不覆盖已有记录
func (h *InvestorHandler) Swipe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	startupID := c.Param("startupID")

	var req dto.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	action := entity.SwipeAction(req.Action)
	if !entity.IsValidSwipeAction(action) {
		dto.BadRequest(c, "Invalid action. Must be 'interested' or 'passed'")
		return
	}

	existing, err := h.swipeRepo.GetByInvestorAndStartup(ctx, userID, startupID)
	if err != nil {
		logger.Error(ctx, "failed to check swipe", err, "investor_id", userID, "startup_id", startupID)
		dto.InternalError(c, "Failed to record swipe")
		return
	}
	if existing != nil {
		dto.Success(c, gin.H{"message": "Already swiped"})
		return
	}

	if err := h.swipeRepo.Create(ctx, entity.NewInvestorSwipe(userID, startupID, action)); err != nil {
		logger.Error(ctx, "failed to record swipe", err, "investor_id", userID, "startup_id", startupID)
		dto.InternalError(c, "Failed to record swipe")
		return
	}
	dto.Success(c, gin.H{"message": fmt.Sprintf("Recorded %s", action)})
}

// Matches 获取已表达意向的项目
// 附加操作时间与创始人联系方式
func (h *InvestorHandler) Matches(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	swipes, err := h.swipeRepo.ListByInvestorAndAction(ctx, userID, entity.SwipeActionInterested)
	if err != nil {
		logger.Error(ctx, "failed to list swipes", err, "investor_id", userID)
		dto.InternalError(c, "failed to list matches")
		return
	}
	if len(swipes) == 0 {
		dto.Success(c, []dto.MatchedStartup{})
		return
	}

	startupIDs := make([]string, 0, len(swipes))
	for _, sw := range swipes {
		startupIDs = append(startupIDs, sw.StartupID)
	}
	startups, err := h.startupRepo.ListByIDs(ctx, startupIDs)
	if err != nil {
		logger.Error(ctx, "failed to list matched startups", err, "investor_id", userID)
		dto.InternalError(c, "failed to list matches")
		return
	}
	startupByID := make(map[string]*entity.Startup, len(startups))
	founderIDs := make([]string, 0, len(startups))
	for _, s := range startups {
		startupByID[s.ID] = s
		if s.FounderID != "" {
			founderIDs = append(founderIDs, s.FounderID)
		}
	}

	profileByID := make(map[string]*entity.Profile)
	if len(founderIDs) > 0 {
		profiles, err := h.profileRepo.ListByIDs(ctx, founderIDs)
		if err != nil {
			logger.Error(ctx, "failed to list founder profiles", err, "investor_id", userID)
			dto.InternalError(c, "failed to list matches")
			return
		}
		for _, p := range profiles {
			profileByID[p.ID] = p
		}
	}

	matches := make([]dto.MatchedStartup, 0, len(swipes))
	for _, sw := range swipes {
		startup := startupByID[sw.StartupID]
		if startup == nil {
			continue
		}
		match := dto.MatchedStartup{
			Startup:  startup,
			SwipedAt: sw.CreatedAt,
		}
		if p := profileByID[startup.FounderID]; p != nil {
			match.FounderName = p.FullName
			match.FounderEmail = p.Email
		}
		matches = append(matches, match)
	}
	dto.Success(c, matches)
}

// RemoveMatch 移除匹配
// 删除对该项目的 interested 操作记录
func (h *InvestorHandler) RemoveMatch(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	startupID := c.Param("startupID")

	if err := h.swipeRepo.Delete(ctx, userID, startupID, entity.SwipeActionInterested); err != nil {
		logger.Error(ctx, "failed to remove match", err, "investor_id", userID, "startup_id", startupID)
		dto.InternalError(c, "failed to remove match")
		return
	}
	dto.Success(c, gin.H{"status": "success", "message": "Match removed"})
}

// InvestorView 投资人视角的项目经营指标
// @Summary 投资人视角项目详情
// @Description 返回项目信息与经营指标: 任务/里程碑完成度, 财务余额, 月均消耗与跑道
// @Tags Investor
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.InvestorViewResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/investor-view [get]
func (h *InvestorHandler) InvestorView(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireMember(c, h.memberRepo, startupID, "Not a member"); member == nil {
		return
	}

	startup, err := h.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to get startup", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get investor view")
		return
	}

	snapshot, err := h.analyticsService.Snapshot(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to build analytics snapshot", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get investor view")
		return
	}

	income, err := h.incomeRepo.ListByStartup(ctx, startupID, 0)
	if err != nil {
		logger.Error(ctx, "failed to list income records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get investor view")
		return
	}
	expenses, err := h.expenseRepo.ListByStartup(ctx, startupID, 0)
	if err != nil {
		logger.Error(ctx, "failed to list expense records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get investor view")
		return
	}
	totalRaised, err := h.investmentRepo.SumAmountByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to sum investments", err, "startup_id", startupID)
		dto.InternalError(c, "failed to get investor view")
		return
	}

	var totalIncome, totalExpenses float64
	for _, rec := range income {
		totalIncome += rec.Amount
	}
	for _, rec := range expenses {
		totalExpenses += rec.Amount
	}
	currentBalance := totalIncome + totalRaised - totalExpenses

	var monthlyBurn, runway float64
	if totalExpenses > 0 {
		monthlyBurn = totalExpenses / 12
	}
	if monthlyBurn > 0 {
		runway = currentBalance / monthlyBurn
	}

	dto.Success(c, dto.InvestorViewResponse{
		Startup: startup,
		Metrics: dto.InvestorViewMetrics{
			TasksCompleted:      snapshot.CompletedTasks,
			TasksTotal:          snapshot.TotalTasks,
			MilestonesCompleted: snapshot.MilestonesCompleted(),
			MilestonesTotal:     snapshot.TotalMilestones,
			TotalIncome:         totalIncome,
			TotalExpenses:       totalExpenses,
			TotalRaised:         totalRaised,
			CurrentBalance:      currentBalance,
			TeamSize:            snapshot.TeamSize,
			MonthlyBurn:         monthlyBurn,
			Runway:              runway,
		},
	})
}
