// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
)

// TaskRepository 任务仓储实现
type TaskRepository struct {
	client *Client
}

// NewTaskRepository 创建任务仓储
func NewTaskRepository(client *Client) *TaskRepository {
	return &TaskRepository{client: client}
}

// Create 创建任务
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(task).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取任务
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var task entity.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// Update 更新任务
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(task).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete 删除任务
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Task{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListByStartup 获取项目全部任务, 创建时间倒序
func (r *TaskRepository) ListByStartup(ctx context.Context, startupID string) ([]*entity.Task, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.ListByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tasks []*entity.Task
	if err := db.Where("startup_id = ?", startupID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// milestoneCountRow 里程碑任务统计行
type milestoneCountRow struct {
	MilestoneID string
	Total       int64
	Done        int64
}

// CountsByMilestone 按里程碑统计任务总数与完成数
func (r *TaskRepository) CountsByMilestone(ctx context.Context, startupID string) (map[string]repository.MilestoneTaskCounts, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.CountsByMilestone")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var rows []milestoneCountRow
	err := db.Model(&entity.Task{}).
		Select("milestone_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS done", entity.TaskStatusDone).
		Where("startup_id = ? AND milestone_id IS NOT NULL", startupID).
		Group("milestone_id").
		Scan(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count tasks by milestone: %w", err)
	}

	counts := make(map[string]repository.MilestoneTaskCounts, len(rows))
	for _, row := range rows {
		counts[row.MilestoneID] = repository.MilestoneTaskCounts{Total: row.Total, Done: row.Done}
	}
	return counts, nil
}

// DetachMilestone 解除任务与里程碑的关联
func (r *TaskRepository) DetachMilestone(ctx context.Context, milestoneID string) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.DetachMilestone")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Model(&entity.Task{}).
		Where("milestone_id = ?", milestoneID).
		Update("milestone_id", nil).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to detach tasks from milestone: %w", err)
	}
	return nil
}
