// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"startupops-api/internal/domain/entity"
)

// IncomeRepository 收入记录仓储实现
type IncomeRepository struct {
	client *Client
}

// NewIncomeRepository 创建收入记录仓储
func NewIncomeRepository(client *Client) *IncomeRepository {
	return &IncomeRepository{client: client}
}

// Create 创建收入记录
func (r *IncomeRepository) Create(ctx context.Context, record *entity.IncomeRecord) error {
	ctx, span := tracer.Start(ctx, "postgres.IncomeRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(record).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create income record: %w", err)
	}
	return nil
}

// ListByStartup 获取项目收入记录, 日期倒序
func (r *IncomeRepository) ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.IncomeRecord, error) {
	ctx, span := tracer.Start(ctx, "postgres.IncomeRepository.ListByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var records []*entity.IncomeRecord
	query := db.Where("startup_id = ?", startupID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}
	return records, nil
}

// Delete 删除收入记录
func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.IncomeRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.IncomeRecord{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete income record: %w", err)
	}
	return nil
}
