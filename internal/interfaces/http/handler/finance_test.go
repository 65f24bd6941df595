package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMemberRepo struct {
	repository.MemberRepository
	member *entity.StartupMember
	err    error
}

func (s *stubMemberRepo) GetByStartupAndUser(ctx context.Context, startupID, userID string) (*entity.StartupMember, error) {
	return s.member, s.err
}

type stubIncomeRepo struct {
	repository.IncomeRepository
	records []*entity.IncomeRecord
	created *entity.IncomeRecord
	err     error
}

func (s *stubIncomeRepo) Create(ctx context.Context, record *entity.IncomeRecord) error {
	s.created = record
	return s.err
}

func (s *stubIncomeRepo) ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.IncomeRecord, error) {
	return s.records, s.err
}

type stubExpenseRepo struct {
	repository.ExpenseRepository
	records []*entity.ExpenseRecord
	err     error
}

func (s *stubExpenseRepo) ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.ExpenseRecord, error) {
	return s.records, s.err
}

type stubInvestmentRepo struct {
	repository.InvestmentRepository
	records []*entity.Investment
	created *entity.Investment
	err     error
}

func (s *stubInvestmentRepo) Create(ctx context.Context, record *entity.Investment) error {
	s.created = record
	return s.err
}

func (s *stubInvestmentRepo) ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.Investment, error) {
	return s.records, s.err
}

func memberWithRole(role entity.MemberRole) *entity.StartupMember {
	return &entity.StartupMember{StartupID: "startup-1", UserID: "user-1", Role: role}
}

// newFinanceRouter 挂载财务路由并注入已认证用户
func newFinanceRouter(h *FinanceHandler) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, "user-1")
	})
	grp := r.Group("/api/startups/:id/finance")
	grp.GET("/summary", h.Summary)
	grp.POST("/income", h.CreateIncome)
	grp.GET("/income", h.ListIncome)
	grp.POST("/investments", h.CreateInvestment)
	grp.DELETE("/investments/:recordID", h.DeleteInvestment)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildFinanceSummary(t *testing.T) {
	income := []*entity.IncomeRecord{
		{Category: "revenue", Amount: 8000},
		{Category: "", Amount: 2000},
	}
	expenses := []*entity.ExpenseRecord{
		{Category: "salaries", Amount: 18000},
		{Category: "operations", Amount: 4000},
		{Category: "", Amount: 2000},
	}
	investments := []*entity.Investment{
		{Amount: 50000, EquityPercentage: 10},
		{Amount: 10000, EquityPercentage: 2.5},
	}

	summary := buildFinanceSummary(income, expenses, investments)

	assert.Equal(t, 10000.0, summary.TotalIncome)
	assert.Equal(t, 24000.0, summary.TotalExpenses)
	assert.Equal(t, 60000.0, summary.TotalInvestments)
	assert.Equal(t, 12.5, summary.TotalEquityGiven)
	// 10000 + 60000 - 24000
	assert.Equal(t, 46000.0, summary.NetBalance)
	// 月均消耗 24000/12 = 2000, 跑道 = round(46000/2000) = 23
	assert.Equal(t, 23, summary.RunwayMonths)
	assert.Equal(t, map[string]float64{"revenue": 8000, "other": 2000}, summary.IncomeByCategory)
	assert.Equal(t, map[string]float64{"salaries": 18000, "operations": 4000, "other": 2000}, summary.ExpensesByCategory)
}

func TestBuildFinanceSummaryEdgeCases(t *testing.T) {
	t.Run("no expenses means no runway estimate", func(t *testing.T) {
		summary := buildFinanceSummary([]*entity.IncomeRecord{{Amount: 5000}}, nil, nil)

		assert.Equal(t, 5000.0, summary.NetBalance)
		assert.Equal(t, 0, summary.RunwayMonths)
	})

	t.Run("negative balance yields negative runway", func(t *testing.T) {
		summary := buildFinanceSummary(nil, []*entity.ExpenseRecord{{Amount: 24000}}, nil)

		assert.Equal(t, -24000.0, summary.NetBalance)
		assert.Equal(t, -12, summary.RunwayMonths)
	})

	t.Run("runway rounds to nearest month", func(t *testing.T) {
		summary := buildFinanceSummary(
			[]*entity.IncomeRecord{{Amount: 15500}},
			[]*entity.ExpenseRecord{{Amount: 12000}},
			nil,
		)

		// 净余额 3500, 月均 1000 -> round(3.5) = 4
		assert.Equal(t, 4, summary.RunwayMonths)
	})

	t.Run("empty records", func(t *testing.T) {
		summary := buildFinanceSummary(nil, nil, nil)

		assert.Equal(t, 0.0, summary.NetBalance)
		assert.Equal(t, 0, summary.RunwayMonths)
		assert.NotNil(t, summary.IncomeByCategory)
		assert.NotNil(t, summary.ExpensesByCategory)
	})
}

func TestFinanceSummaryEndpoint(t *testing.T) {
	h := NewFinanceHandler(
		&stubIncomeRepo{records: []*entity.IncomeRecord{{Amount: 12000, Category: "revenue"}}},
		&stubExpenseRepo{records: []*entity.ExpenseRecord{{Amount: 6000, Category: "salaries"}}},
		&stubInvestmentRepo{records: []*entity.Investment{{Amount: 30000, EquityPercentage: 8}}},
		&stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)},
	)

	w := doJSON(t, newFinanceRouter(h), http.MethodGet, "/api/startups/startup-1/finance/summary", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response[dto.FinanceSummaryResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, 36000.0, resp.Data.NetBalance)
	assert.Equal(t, 72, resp.Data.RunwayMonths)
	assert.Equal(t, 8.0, resp.Data.TotalEquityGiven)
}

func TestFinanceSummaryForbiddenForNonMember(t *testing.T) {
	h := NewFinanceHandler(&stubIncomeRepo{}, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{member: nil})

	w := doJSON(t, newFinanceRouter(h), http.MethodGet, "/api/startups/startup-1/finance/summary", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Not a member")
}

func TestFinanceSummaryMembershipCheckError(t *testing.T) {
	h := NewFinanceHandler(&stubIncomeRepo{}, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{err: assert.AnError})

	w := doJSON(t, newFinanceRouter(h), http.MethodGet, "/api/startups/startup-1/finance/summary", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateIncomeAsFounder(t *testing.T) {
	incomeRepo := &stubIncomeRepo{}
	h := NewFinanceHandler(incomeRepo, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleFounder)})

	w := doJSON(t, newFinanceRouter(h), http.MethodPost, "/api/startups/startup-1/finance/income",
		`{"title":"Pilot contract","amount":5000,"category":"sales","date":"2025-06-01","notes":"first customer"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, incomeRepo.created)
	assert.Equal(t, "startup-1", incomeRepo.created.StartupID)
	assert.Equal(t, "Pilot contract", incomeRepo.created.Title)
	assert.Equal(t, 5000.0, incomeRepo.created.Amount)
	assert.Equal(t, "sales", incomeRepo.created.Category)
	assert.Equal(t, "2025-06-01", incomeRepo.created.Date.String())
	assert.Equal(t, "user-1", incomeRepo.created.CreatedBy)
}

func TestCreateIncomeDefaultsCategory(t *testing.T) {
	incomeRepo := &stubIncomeRepo{}
	h := NewFinanceHandler(incomeRepo, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleManager)})

	w := doJSON(t, newFinanceRouter(h), http.MethodPost, "/api/startups/startup-1/finance/income",
		`{"title":"Misc","amount":100}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, incomeRepo.created)
	assert.Equal(t, "revenue", incomeRepo.created.Category)
}

func TestCreateIncomeRequiresManager(t *testing.T) {
	h := NewFinanceHandler(&stubIncomeRepo{}, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)})

	w := doJSON(t, newFinanceRouter(h), http.MethodPost, "/api/startups/startup-1/finance/income",
		`{"title":"Pilot contract","amount":5000}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Founders/managers only")
}

func TestCreateIncomeInvalidBody(t *testing.T) {
	h := NewFinanceHandler(&stubIncomeRepo{}, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleFounder)})

	w := doJSON(t, newFinanceRouter(h), http.MethodPost, "/api/startups/startup-1/finance/income", `{"amount":5000}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncomeRejectsBadDate(t *testing.T) {
	h := NewFinanceHandler(&stubIncomeRepo{}, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleFounder)})

	w := doJSON(t, newFinanceRouter(h), http.MethodPost, "/api/startups/startup-1/finance/income",
		`{"title":"Pilot","amount":100,"date":"06/01/2025"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid date")
}

func TestCreateInvestmentByInvestor(t *testing.T) {
	investmentRepo := &stubInvestmentRepo{}
	h := NewFinanceHandler(&stubIncomeRepo{}, &stubExpenseRepo{}, investmentRepo, &stubMemberRepo{member: memberWithRole(entity.MemberRoleInvestor)})

	w := doJSON(t, newFinanceRouter(h), http.MethodPost, "/api/startups/startup-1/finance/investments",
		`{"investor_name":"Sequoia","amount":250000,"equity_percentage":12,"investment_type":"series_a"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, investmentRepo.created)
	assert.Equal(t, "Sequoia", investmentRepo.created.InvestorName)
	assert.Equal(t, 12.0, investmentRepo.created.EquityPercentage)
	assert.Equal(t, "series_a", investmentRepo.created.InvestmentType)
}

func TestCreateInvestmentDeniedForManager(t *testing.T) {
	h := NewFinanceHandler(&stubIncomeRepo{}, &stubExpenseRepo{}, &stubInvestmentRepo{}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleManager)})

	w := doJSON(t, newFinanceRouter(h), http.MethodPost, "/api/startups/startup-1/finance/investments",
		`{"investor_name":"Sequoia","amount":250000}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only founders and investors")
}
