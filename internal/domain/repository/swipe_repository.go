// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// SwipeRepository 投资人浏览操作仓储接口
type SwipeRepository interface {
	// Create 记录浏览操作
	Create(ctx context.Context, swipe *entity.InvestorSwipe) error

	// GetByInvestorAndStartup 获取投资人对某项目的操作记录
	GetByInvestorAndStartup(ctx context.Context, investorID, startupID string) (*entity.InvestorSwipe, error)

	// ListByInvestorAndAction 获取投资人指定操作的全部记录，按操作时间倒序
	ListByInvestorAndAction(ctx context.Context, investorID string, action entity.SwipeAction) ([]*entity.InvestorSwipe, error)

	// Delete 删除指定操作记录
	Delete(ctx context.Context, investorID, startupID string, action entity.SwipeAction) error
}
