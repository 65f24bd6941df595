// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// ProfileRepository 用户档案仓储接口
type ProfileRepository interface {
	// Create 创建档案
	Create(ctx context.Context, profile *entity.Profile) error

	// GetByID 根据 ID 获取档案
	GetByID(ctx context.Context, id string) (*entity.Profile, error)

	// Update 更新档案
	Update(ctx context.Context, profile *entity.Profile) error

	// ListByIDs 批量获取档案
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Profile, error)
}
