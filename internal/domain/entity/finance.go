// Package entity 定义领域实体
package entity

import (
	"time"
)

// IncomeRecord 收入记录
type IncomeRecord struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID string    `json:"startup_id" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Category  string    `json:"category" gorm:"type:varchar(100);default:'revenue'"`
	Date      Date      `json:"date" gorm:"type:date;index"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy string    `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (IncomeRecord) TableName() string {
	return "income"
}

// NewIncomeRecord 创建收入记录
func NewIncomeRecord(startupID, title string, amount float64, createdBy string) *IncomeRecord {
	return &IncomeRecord{
		StartupID: startupID,
		Title:     title,
		Amount:    amount,
		Category:  "revenue",
		Date:      Today(),
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
}

// ExpenseRecord 支出记录
type ExpenseRecord struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID string    `json:"startup_id" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Category  string    `json:"category" gorm:"type:varchar(100);default:'operations'"`
	Date      Date      `json:"date" gorm:"type:date;index"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy string    `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ExpenseRecord) TableName() string {
	return "expenses"
}

// NewExpenseRecord 创建支出记录
func NewExpenseRecord(startupID, title string, amount float64, createdBy string) *ExpenseRecord {
	return &ExpenseRecord{
		StartupID: startupID,
		Title:     title,
		Amount:    amount,
		Category:  "operations",
		Date:      Today(),
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
}

// Investment 融资记录
type Investment struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID        string    `json:"startup_id" gorm:"type:uuid;index;not null"`
	InvestorName     string    `json:"investor_name" gorm:"type:varchar(255);not null"`
	Amount           float64   `json:"amount" gorm:"not null"`
	EquityPercentage float64   `json:"equity_percentage" gorm:"default:0"`
	InvestmentType   string    `json:"investment_type" gorm:"type:varchar(100);default:'seed'"`
	Date             Date      `json:"date" gorm:"type:date;index"`
	Notes            string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy        string    `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Investment) TableName() string {
	return "investments"
}

// NewInvestment 创建融资记录
func NewInvestment(startupID, investorName string, amount float64, createdBy string) *Investment {
	return &Investment{
		StartupID:      startupID,
		InvestorName:   investorName,
		Amount:         amount,
		InvestmentType: "seed",
		Date:           Today(),
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}
}
