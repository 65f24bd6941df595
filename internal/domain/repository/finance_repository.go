// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// IncomeRepository 收入记录仓储接口
type IncomeRepository interface {
	// Create 创建收入记录
	Create(ctx context.Context, record *entity.IncomeRecord) error

	// ListByStartup 获取项目收入记录，按日期倒序
	ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.IncomeRecord, error)

	// Delete 删除收入记录
	Delete(ctx context.Context, id string) error
}

// ExpenseRepository 支出记录仓储接口
type ExpenseRepository interface {
	// Create 创建支出记录
	Create(ctx context.Context, record *entity.ExpenseRecord) error

	// ListByStartup 获取项目支出记录，按日期倒序
	ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.ExpenseRecord, error)

	// Delete 删除支出记录
	Delete(ctx context.Context, id string) error
}

// InvestmentRepository 融资记录仓储接口
type InvestmentRepository interface {
	// Create 创建融资记录
	Create(ctx context.Context, record *entity.Investment) error

	// ListByStartup 获取项目融资记录，按日期倒序
	ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.Investment, error)

	// SumAmountByStartup 统计项目融资总额
	SumAmountByStartup(ctx context.Context, startupID string) (float64, error)

	// Delete 删除融资记录
	Delete(ctx context.Context, id string) error
}
