// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"startupops-api/internal/domain/entity"
)

// ExpenseRepository 支出记录仓储实现
type ExpenseRepository struct {
	client *Client
}

// NewExpenseRepository 创建支出记录仓储
func NewExpenseRepository(client *Client) *ExpenseRepository {
	return &ExpenseRepository{client: client}
}

// Create 创建支出记录
func (r *ExpenseRepository) Create(ctx context.Context, record *entity.ExpenseRecord) error {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(record).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create expense record: %w", err)
	}
	return nil
}

// ListByStartup 获取项目支出记录, 日期倒序
func (r *ExpenseRepository) ListByStartup(ctx context.Context, startupID string, limit int) ([]*entity.ExpenseRecord, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.ListByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var records []*entity.ExpenseRecord
	query := db.Where("startup_id = ?", startupID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list expense records: %w", err)
	}
	return records, nil
}

// Delete 删除支出记录
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ExpenseRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.ExpenseRecord{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete expense record: %w", err)
	}
	return nil
}
