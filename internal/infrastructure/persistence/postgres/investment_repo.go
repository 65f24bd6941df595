// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"startupops-api/internal/domain/entity"
)

// InvestmentRepository 融资记录仓储实现
type InvestmentRepository struct {
	client *Client
}

// NewInvestmentRepository 创建融资记录仓储
func NewInvestmentRepository(client *Client) *InvestmentRepository {
	return &InvestmentRepository{client: client}
}

// Create 创建融资记录
func (r *InvestmentRepository) Create(ctx context.Context, investment *entity.Investment) error {
	ctx, span := tracer.Start(ctx, "postgres.InvestmentRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(investment).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// ListByStartup 获取项目融资记录, 日期倒序
func (r *InvestmentRepository) ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.Investment, error) {
	ctx, span := tracer.Start(ctx, "postgres.InvestmentRepository.ListByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var investments []*entity.Investment
	query := db.Where("startup_id = ?", startupID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&investments).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}

// Delete 删除融资记录
func (r *InvestmentRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.InvestmentRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Investment{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}

// SumAmountByStartup 统计项目累计融资额
func (r *InvestmentRepository) SumAmountByStartup(ctx context.Context, startupID string) (float64, error) {
	ctx, span := tracer.Start(ctx, "postgres.InvestmentRepository.SumAmountByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var total float64
	err := db.Model(&entity.Investment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("startup_id = ?", startupID).
		Scan(&total).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to sum investments: %w", err)
	}
	return total, nil
}
