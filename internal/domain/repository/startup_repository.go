// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// StartupRepository 创业项目仓储接口
type StartupRepository interface {
	// Create 创建项目
	Create(ctx context.Context, startup *entity.Startup) error

	// GetByID 根据 ID 获取项目
	GetByID(ctx context.Context, id string) (*entity.Startup, error)

	// GetByInviteCode 根据邀请码获取项目
	GetByInviteCode(ctx context.Context, code string) (*entity.Startup, error)

	// Update 更新项目
	Update(ctx context.Context, startup *entity.Startup) error

	// UpdateInviteCode 更新邀请码
	UpdateInviteCode(ctx context.Context, id, code string) error

	// UpdateSubscriptionPlan 更新项目上的订阅计划快照
	UpdateSubscriptionPlan(ctx context.Context, id string, plan entity.SubscriptionPlan) error

	// ListByMember 获取用户参与的全部项目
	ListByMember(ctx context.Context, userID string) ([]*entity.Startup, error)

	// ListAvailableForInvestor 分页获取投资人尚未浏览过的项目
	ListAvailableForInvestor(ctx context.Context, investorID string, pagination Pagination) (*PagedResult[*entity.Startup], error)

	// ListByIDs 批量获取项目
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Startup, error)
}
