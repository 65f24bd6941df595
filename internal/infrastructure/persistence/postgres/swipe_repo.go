// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"startupops-api/internal/domain/entity"
)

// SwipeRepository 投资人滑动记录仓储实现
type SwipeRepository struct {
	client *Client
}

// NewSwipeRepository 创建滑动记录仓储
func NewSwipeRepository(client *Client) *SwipeRepository {
	return &SwipeRepository{client: client}
}

// Create 创建滑动记录
func (r *SwipeRepository) Create(ctx context.Context, swipe *entity.InvestorSwipe) error {
	ctx, span := tracer.Start(ctx, "postgres.SwipeRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(swipe).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create swipe: %w", err)
	}
	return nil
}

// GetByInvestorAndStartup 获取投资人对项目的滑动记录
func (r *SwipeRepository) GetByInvestorAndStartup(ctx context.Context, investorID, startupID string) (*entity.InvestorSwipe, error) {
	ctx, span := tracer.Start(ctx, "postgres.SwipeRepository.GetByInvestorAndStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var swipe entity.InvestorSwipe
	if err := db.First(&swipe, "investor_id = ? AND startup_id = ?", investorID, startupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get swipe: %w", err)
	}
	return &swipe, nil
}

// ListByInvestorAndAction 获取投资人指定动作的滑动记录, 时间倒序
func (r *SwipeRepository) ListByInvestorAndAction(ctx context.Context, investorID string, action entity.SwipeAction) ([]*entity.InvestorSwipe, error) {
	ctx, span := tracer.Start(ctx, "postgres.SwipeRepository.ListByInvestorAndAction")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var swipes []*entity.InvestorSwipe
	err := db.Where("investor_id = ? AND action = ?", investorID, action).
		Order("created_at DESC").
		Find(&swipes).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list swipes: %w", err)
	}
	return swipes, nil
}

// Delete 删除指定动作的滑动记录
func (r *SwipeRepository) Delete(ctx context.Context, investorID, startupID string, action entity.SwipeAction) error {
	ctx, span := tracer.Start(ctx, "postgres.SwipeRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Delete(&entity.InvestorSwipe{}, "investor_id = ? AND startup_id = ? AND action = ?", investorID, startupID, action).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete swipe: %w", err)
	}
	return nil
}
