// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"startupops-api/internal/domain/entity"
)

// MilestoneRepository 里程碑仓储实现
type MilestoneRepository struct {
	client *Client
}

// NewMilestoneRepository 创建里程碑仓储
func NewMilestoneRepository(client *Client) *MilestoneRepository {
	return &MilestoneRepository{client: client}
}

// Create 创建里程碑
func (r *MilestoneRepository) Create(ctx context.Context, milestone *entity.Milestone) error {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(milestone).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create milestone: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取里程碑
func (r *MilestoneRepository) GetByID(ctx context.Context, id string) (*entity.Milestone, error) {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var milestone entity.Milestone
	if err := db.First(&milestone, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}
	return &milestone, nil
}

// Update 更新里程碑
func (r *MilestoneRepository) Update(ctx context.Context, milestone *entity.Milestone) error {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(milestone).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	return nil
}

// Delete 删除里程碑
func (r *MilestoneRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Milestone{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}

// ListByStartup 获取项目全部里程碑, 目标日期升序
func (r *MilestoneRepository) ListByStartup(ctx context.Context, startupID string) ([]*entity.Milestone, error) {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.ListByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var milestones []*entity.Milestone
	if err := db.Where("startup_id = ?", startupID).Order("target_date ASC").Find(&milestones).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

// milestoneTotalsRow 里程碑总量统计行
type milestoneTotalsRow struct {
	Total     int64
	Completed int64
}

// CountByStartup 统计项目里程碑总数与完成数
func (r *MilestoneRepository) CountByStartup(ctx context.Context, startupID string) (int64, int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.CountByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var row milestoneTotalsRow
	err := db.Model(&entity.Milestone{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS completed", entity.MilestoneStatusCompleted).
		Where("startup_id = ?", startupID).
		Scan(&row).Error
	if err != nil {
		span.RecordError(err)
		return 0, 0, fmt.Errorf("failed to count milestones: %w", err)
	}
	return row.Total, row.Completed, nil
}
