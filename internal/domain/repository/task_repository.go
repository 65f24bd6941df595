// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// MilestoneTaskCounts 单个里程碑下的任务数统计
type MilestoneTaskCounts struct {
	Total int64
	Done  int64
}

// TaskRepository 任务仓储接口
type TaskRepository interface {
	// Create 创建任务
	Create(ctx context.Context, task *entity.Task) error

	// GetByID 根据 ID 获取任务
	GetByID(ctx context.Context, id string) (*entity.Task, error)

	// Update 更新任务
	Update(ctx context.Context, task *entity.Task) error

	// Delete 删除任务
	Delete(ctx context.Context, id string) error

	// ListByStartup 获取项目任务列表，按创建时间倒序
	ListByStartup(ctx context.Context, startupID string) ([]*entity.Task, error)

	// CountsByMilestone 按里程碑统计项目任务数（总数/完成数）
	CountsByMilestone(ctx context.Context, startupID string) (map[string]MilestoneTaskCounts, error)

	// DetachMilestone 解除里程碑下所有任务的关联
	DetachMilestone(ctx context.Context, milestoneID string) error
}
