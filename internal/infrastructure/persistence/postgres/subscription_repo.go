// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"startupops-api/internal/domain/entity"
)

// SubscriptionRepository 订阅仓储实现
type SubscriptionRepository struct {
	client *Client
}

// NewSubscriptionRepository 创建订阅仓储
func NewSubscriptionRepository(client *Client) *SubscriptionRepository {
	return &SubscriptionRepository{client: client}
}

// Create 创建订阅记录
func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	ctx, span := tracer.Start(ctx, "postgres.SubscriptionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(subscription).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// GetByStartup 获取项目订阅记录
func (r *SubscriptionRepository) GetByStartup(ctx context.Context, startupID string) (*entity.Subscription, error) {
	ctx, span := tracer.Start(ctx, "postgres.SubscriptionRepository.GetByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var subscription entity.Subscription
	if err := db.First(&subscription, "startup_id = ?", startupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &subscription, nil
}

// Update 更新订阅记录
func (r *SubscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	ctx, span := tracer.Start(ctx, "postgres.SubscriptionRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(subscription).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}
