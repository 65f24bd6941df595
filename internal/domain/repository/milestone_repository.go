// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// MilestoneRepository 里程碑仓储接口
type MilestoneRepository interface {
	// Create 创建里程碑
	Create(ctx context.Context, milestone *entity.Milestone) error

	// GetByID 根据 ID 获取里程碑
	GetByID(ctx context.Context, id string) (*entity.Milestone, error)

	// Update 更新里程碑
	Update(ctx context.Context, milestone *entity.Milestone) error

	// Delete 删除里程碑
	Delete(ctx context.Context, id string) error

	// ListByStartup 获取项目里程碑列表，按目标日期升序
	ListByStartup(ctx context.Context, startupID string) ([]*entity.Milestone, error)

	// CountByStartup 统计项目里程碑数（总数/完成数）
	CountByStartup(ctx context.Context, startupID string) (total, completed int64, err error)
}
