// Package dto 提供 HTTP 层数据传输对象
package dto

// CreateIncomeRequest 创建收入记录请求
type CreateIncomeRequest struct {
	Title    string  `json:"title" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes"`
}

// CreateExpenseRequest 创建支出记录请求
type CreateExpenseRequest struct {
	Title    string  `json:"title" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes"`
}

// CreateInvestmentRequest 创建融资记录请求
type CreateInvestmentRequest struct {
	InvestorName     string  `json:"investor_name" binding:"required"`
	Amount           float64 `json:"amount" binding:"required"`
	EquityPercentage float64 `json:"equity_percentage"`
	InvestmentType   string  `json:"investment_type"`
	Date             string  `json:"date"`
	Notes            string  `json:"notes"`
}

// FinanceSummaryResponse 财务汇总响应
type FinanceSummaryResponse struct {
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	TotalInvestments   float64            `json:"total_investments"`
	NetBalance         float64            `json:"net_balance"`
	RunwayMonths       int                `json:"runway_months"`
	TotalEquityGiven   float64            `json:"total_equity_given"`
	IncomeByCategory   map[string]float64 `json:"income_by_category"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
}
