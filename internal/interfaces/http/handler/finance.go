// Package handler 提供 HTTP 请求处理器
package handler

import (
	"math"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/logger"
)

// 列表接口的返回条数上限
const (
	financeListLimit    = 500
	investmentListLimit = 100
)

// FinanceHandler 财务记录处理器
type FinanceHandler struct {
	incomeRepo     repository.IncomeRepository
	expenseRepo    repository.ExpenseRepository
	investmentRepo repository.InvestmentRepository
	memberRepo     repository.MemberRepository
}

// NewFinanceHandler 创建财务记录处理器
func NewFinanceHandler(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	investmentRepo repository.InvestmentRepository,
	memberRepo repository.MemberRepository,
) *FinanceHandler {
	return &FinanceHandler{
		incomeRepo:     incomeRepo,
		expenseRepo:    expenseRepo,
		investmentRepo: investmentRepo,
		memberRepo:     memberRepo,
	}
}

// CreateIncome 创建收入记录
// @Summary 创建收入记录
// @Description 记录一笔收入, 仅创始人和管理者可操作
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "项目 ID"
// @Param body body dto.CreateIncomeRequest true "收入信息"
// @Success 200 {object} dto.Response[entity.IncomeRecord]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/finance/income [post]
func (h *FinanceHandler) CreateIncome(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if member := requireManager(c, h.memberRepo, startupID, "Founders/managers only"); member == nil {
		return
	}

	record := entity.NewIncomeRecord(startupID, req.Title, req.Amount, userID)
	if req.Category != "" {
		record.Category = req.Category
	}
	if req.Date != "" {
		d, err := entity.ParseDate(req.Date)
		if err != nil {
			dto.BadRequest(c, "invalid date: "+err.Error())
			return
		}
		record.Date = d
	}
	record.Notes = req.Notes

	if err := h.incomeRepo.Create(ctx, record); err != nil {
		logger.Error(ctx, "failed to create income record", err, "startup_id", startupID)
		dto.InternalError(c, "failed to create income record")
		return
	}
	dto.Success(c, record)
}

// ListIncome 获取收入记录
func (h *FinanceHandler) ListIncome(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireMember(c, h.memberRepo, startupID, "Not a member"); member == nil {
		return
	}

	records, err := h.incomeRepo.ListByStartup(ctx, startupID, financeListLimit)
	if err != nil {
		logger.Error(ctx, "failed to list income records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list income records")
		return
	}
	dto.Success(c, records)
}

// DeleteIncome 删除收入记录
func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	recordID := c.Param("recordID")

	if member := requireManager(c, h.memberRepo, startupID, "Founders/managers only"); member == nil {
		return
	}

	if err := h.incomeRepo.Delete(ctx, recordID); err != nil {
		logger.Error(ctx, "failed to delete income record", err, "record_id", recordID)
		dto.InternalError(c, "failed to delete income record")
		return
	}
	dto.Success(c, gin.H{"success": true})
}

// CreateExpense 创建支出记录
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if member := requireManager(c, h.memberRepo, startupID, "Founders/managers only"); member == nil {
		return
	}

	record := entity.NewExpenseRecord(startupID, req.Title, req.Amount, userID)
	if req.Category != "" {
		record.Category = req.Category
	}
	if req.Date != "" {
		d, err := entity.ParseDate(req.Date)
		if err != nil {
			dto.BadRequest(c, "invalid date: "+err.Error())
			return
		}
		record.Date = d
	}
	record.Notes = req.Notes

	if err := h.expenseRepo.Create(ctx, record); err != nil {
		logger.Error(ctx, "failed to create expense record", err, "startup_id", startupID)
		dto.InternalError(c, "failed to create expense record")
		return
	}
	dto.Success(c, record)
}

// ListExpenses 获取支出记录
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireMember(c, h.memberRepo, startupID, "Not a member"); member == nil {
		return
	}

	records, err := h.expenseRepo.ListByStartup(ctx, startupID, financeListLimit)
	if err != nil {
		logger.Error(ctx, "failed to list expense records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list expense records")
		return
	}
	dto.Success(c, records)
}

// DeleteExpense 删除支出记录
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	recordID := c.Param("recordID")

	if member := requireManager(c, h.memberRepo, startupID, "Founders/managers only"); member == nil {
		return
	}

	if err := h.expenseRepo.Delete(ctx, recordID); err != nil {
		logger.Error(ctx, "failed to delete expense record", err, "record_id", recordID)
		dto.InternalError(c, "failed to delete expense record")
		return
	}
	dto.Success(c, gin.H{"success": true})
}

// CreateInvestment 创建融资记录
// 创始人和投资人均可录入
func (h *FinanceHandler) CreateInvestment(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	member := requireMember(c, h.memberRepo, startupID, "Not a member of this startup")
	if member == nil {
		return
	}
	if !member.CanRecordInvestment() {
		dto.Forbidden(c, "Only founders and investors can add investments")
		return
	}

	record := entity.NewInvestment(startupID, req.InvestorName, req.Amount, userID)
	record.EquityPercentage = req.EquityPercentage
	if req.InvestmentType != "" {
		record.InvestmentType = req.InvestmentType
	}
	if req.Date != "" {
		d, err := entity.ParseDate(req.Date)
		if err != nil {
			dto.BadRequest(c, "invalid date: "+err.Error())
			return
		}
		record.Date = d
	}
	record.Notes = req.Notes

	if err := h.investmentRepo.Create(ctx, record); err != nil {
		logger.Error(ctx, "failed to create investment record", err, "startup_id", startupID)
		dto.InternalError(c, "failed to create investment record")
		return
	}
	dto.Success(c, record)
}

// ListInvestments 获取融资记录
func (h *FinanceHandler) ListInvestments(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireMember(c, h.memberRepo, startupID, "Not a member"); member == nil {
		return
	}

	records, err := h.investmentRepo.ListByStartup(ctx, startupID, investmentListLimit)
	if err != nil {
		logger.Error(ctx, "failed to list investment records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list investment records")
		return
	}
	dto.Success(c, records)
}

// DeleteInvestment 删除融资记录
func (h *FinanceHandler) DeleteInvestment(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	recordID := c.Param("recordID")

	member := requireMember(c, h.memberRepo, startupID, "Not a member of this startup")
	if member == nil {
		return
	}
	if !member.CanRecordInvestment() {
		dto.Forbidden(c, "Only founders and investors can delete investments")
		return
	}

	if err := h.investmentRepo.Delete(ctx, recordID); err != nil {
		logger.Error(ctx, "failed to delete investment record", err, "record_id", recordID)
		dto.InternalError(c, "failed to delete investment record")
		return
	}
	dto.Success(c, gin.H{"success": true})
}

// Summary 获取财务汇总
// @Summary 获取财务汇总
// @Description 汇总收入/支出/融资总额, 计算净余额, 跑道月数与已出让股权
// @Tags Finance
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.FinanceSummaryResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/finance/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if member := requireMember(c, h.memberRepo, startupID, "Not a member"); member == nil {
		return
	}

	income, err := h.incomeRepo.ListByStartup(ctx, startupID, 0)
	if err != nil {
		logger.Error(ctx, "failed to list income records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to build finance summary")
		return
	}
	expenses, err := h.expenseRepo.ListByStartup(ctx, startupID, 0)
	if err != nil {
		logger.Error(ctx, "failed to list expense records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to build finance summary")
		return
	}
	investments, err := h.investmentRepo.ListByStartup(ctx, startupID, 0)
	if err != nil {
		logger.Error(ctx, "failed to list investment records", err, "startup_id", startupID)
		dto.InternalError(c, "failed to build finance summary")
		return
	}

	dto.Success(c, buildFinanceSummary(income, expenses, investments))
}

// buildFinanceSummary 根据全量财务记录计算汇总指标
// 月均消耗按支出总额摊到 12 个月估算, 跑道 = 净余额 / 月均消耗
func buildFinanceSummary(
	income []*entity.IncomeRecord,
	expenses []*entity.ExpenseRecord,
	investments []*entity.Investment,
) dto.FinanceSummaryResponse {
	summary := dto.FinanceSummaryResponse{
		IncomeByCategory:   map[string]float64{},
		ExpensesByCategory: map[string]float64{},
	}

	for _, rec := range income {
		summary.TotalIncome += rec.Amount
		summary.IncomeByCategory[categoryOrOther(rec.Category)] += rec.Amount
	}
	for _, rec := range expenses {
		summary.TotalExpenses += rec.Amount
		summary.ExpensesByCategory[categoryOrOther(rec.Category)] += rec.Amount
	}
	for _, rec := range investments {
		summary.TotalInvestments += rec.Amount
		summary.TotalEquityGiven += rec.EquityPercentage
	}

	summary.NetBalance = summary.TotalIncome + summary.TotalInvestments - summary.TotalExpenses

	var monthlyBurn float64
	if summary.TotalExpenses > 0 {
		monthlyBurn = summary.TotalExpenses / 12
	}
	if monthlyBurn > 0 {
		summary.RunwayMonths = int(math.Round(summary.NetBalance / monthlyBurn))
	}
	return summary
}

// categoryOrOther 空分类归入 other
func categoryOrOther(category string) string {
	if category == "" {
		return "other"
	}
	return category
}
