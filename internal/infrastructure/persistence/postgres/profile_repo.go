// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"startupops-api/internal/domain/entity"
)

// ProfileRepository 用户档案仓储实现
type ProfileRepository struct {
	client *Client
}

// NewProfileRepository 创建用户档案仓储
func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

// Create 创建档案
func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(profile).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取档案
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var profile entity.Profile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Update 更新档案
func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(profile).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// ListByIDs 批量获取档案
func (r *ProfileRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Profile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.ListByIDs")
	defer span.End()

	if len(ids) == 0 {
		return []*entity.Profile{}, nil
	}

	db := getDB(ctx, r.client.db)
	var profiles []*entity.Profile
	if err := db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
