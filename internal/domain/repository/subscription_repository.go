// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// SubscriptionRepository 订阅仓储接口
type SubscriptionRepository interface {
	// Create 创建订阅
	Create(ctx context.Context, sub *entity.Subscription) error

	// GetByStartup 获取项目订阅
	GetByStartup(ctx context.Context, startupID string) (*entity.Subscription, error)

	// Update 更新订阅
	Update(ctx context.Context, sub *entity.Subscription) error
}
