// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
)

// StartupRepository 创业项目仓储实现
type StartupRepository struct {
	client *Client
}

// NewStartupRepository 创建创业项目仓储
func NewStartupRepository(client *Client) *StartupRepository {
	return &StartupRepository{client: client}
}

// Create 创建项目
func (r *StartupRepository) Create(ctx context.Context, startup *entity.Startup) error {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(startup).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create startup: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取项目
func (r *StartupRepository) GetByID(ctx context.Context, id string) (*entity.Startup, error) {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var startup entity.Startup
	if err := db.First(&startup, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get startup: %w", err)
	}
	return &startup, nil
}

// GetByInviteCode 根据邀请码获取项目
func (r *StartupRepository) GetByInviteCode(ctx context.Context, code string) (*entity.Startup, error) {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.GetByInviteCode")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var startup entity.Startup
	if err := db.First(&startup, "invite_code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get startup by invite code: %w", err)
	}
	return &startup, nil
}

// Update 更新项目
func (r *StartupRepository) Update(ctx context.Context, startup *entity.Startup) error {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(startup).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update startup: %w", err)
	}
	return nil
}

// UpdateInviteCode 更新邀请码
func (r *StartupRepository) UpdateInviteCode(ctx context.Context, id, code string) error {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.UpdateInviteCode")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Startup{}).Where("id = ?", id).Update("invite_code", code).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update invite code: %w", err)
	}
	return nil
}

// UpdateSubscriptionPlan 更新项目上的订阅计划快照
func (r *StartupRepository) UpdateSubscriptionPlan(ctx context.Context, id string, plan entity.SubscriptionPlan) error {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.UpdateSubscriptionPlan")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Startup{}).Where("id = ?", id).Update("subscription_plan", plan).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update subscription plan: %w", err)
	}
	return nil
}

// ListByMember 获取用户参与的全部项目
func (r *StartupRepository) ListByMember(ctx context.Context, userID string) ([]*entity.Startup, error) {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.ListByMember")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var startups []*entity.Startup
	err := db.Model(&entity.Startup{}).
		Joins("JOIN startup_members ON startup_members.startup_id = startups.id").
		Where("startup_members.user_id = ?", userID).
		Order("startups.created_at DESC").
		Find(&startups).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list startups by member: %w", err)
	}
	return startups, nil
}

// ListAvailableForInvestor 分页获取投资人尚未浏览过的项目
func (r *StartupRepository) ListAvailableForInvestor(ctx context.Context, investorID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Startup], error) {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.ListAvailableForInvestor")
	defer span.End()

	db := getDB(ctx, r.client.db)
	swiped := db.Session(&gorm.Session{NewDB: true}).
		Model(&entity.InvestorSwipe{}).
		Select("startup_id").
		Where("investor_id = ?", investorID)

	query := db.Model(&entity.Startup{}).Where("id NOT IN (?)", swiped)

	// 获取总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count available startups: %w", err)
	}

	// 获取列表
	var startups []*entity.Startup
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&startups).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list available startups: %w", err)
	}

	return repository.NewPagedResult(startups, total, pagination), nil
}

// ListByIDs 批量获取项目
func (r *StartupRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Startup, error) {
	ctx, span := tracer.Start(ctx, "postgres.StartupRepository.ListByIDs")
	defer span.End()

	if len(ids) == 0 {
		return []*entity.Startup{}, nil
	}

	db := getDB(ctx, r.client.db)
	var startups []*entity.Startup
	if err := db.Where("id IN ?", ids).Find(&startups).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	return startups, nil
}
