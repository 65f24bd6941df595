// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"startupops-api/internal/domain/entity"
)

// FeedbackRepository 用户反馈仓储实现
type FeedbackRepository struct {
	client *Client
}

// NewFeedbackRepository 创建用户反馈仓储
func NewFeedbackRepository(client *Client) *FeedbackRepository {
	return &FeedbackRepository{client: client}
}

// Create 创建反馈
func (r *FeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	ctx, span := tracer.Start(ctx, "postgres.FeedbackRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(feedback).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// ListByStartup 获取项目全部反馈, 创建时间倒序
func (r *FeedbackRepository) ListByStartup(ctx context.Context, startupID string) ([]*entity.Feedback, error) {
	ctx, span := tracer.Start(ctx, "postgres.FeedbackRepository.ListByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var items []*entity.Feedback
	if err := db.Where("startup_id = ?", startupID).Order("created_at DESC").Find(&items).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}
