// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"startupops-api/internal/domain/entity"
)

// MemberRepository 团队成员仓储实现
type MemberRepository struct {
	client *Client
}

// NewMemberRepository 创建团队成员仓储
func NewMemberRepository(client *Client) *MemberRepository {
	return &MemberRepository{client: client}
}

// Create 创建成员关系
func (r *MemberRepository) Create(ctx context.Context, member *entity.StartupMember) error {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(member).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// GetByStartupAndUser 获取用户在项目中的成员关系
func (r *MemberRepository) GetByStartupAndUser(ctx context.Context, startupID, userID string) (*entity.StartupMember, error) {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.GetByStartupAndUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var member entity.StartupMember
	if err := db.First(&member, "startup_id = ? AND user_id = ?", startupID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

// ListByStartup 获取项目全部成员
func (r *MemberRepository) ListByStartup(ctx context.Context, startupID string) ([]*entity.StartupMember, error) {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.ListByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var members []*entity.StartupMember
	if err := db.Where("startup_id = ?", startupID).Order("joined_at ASC").Find(&members).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ListByUser 获取用户的全部成员关系
func (r *MemberRepository) ListByUser(ctx context.Context, userID string) ([]*entity.StartupMember, error) {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var members []*entity.StartupMember
	if err := db.Where("user_id = ?", userID).Order("joined_at ASC").Find(&members).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list members by user: %w", err)
	}
	return members, nil
}

// ListByStartupAndRole 按角色获取项目成员
func (r *MemberRepository) ListByStartupAndRole(ctx context.Context, startupID string, role entity.MemberRole) ([]*entity.StartupMember, error) {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.ListByStartupAndRole")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var members []*entity.StartupMember
	if err := db.Where("startup_id = ? AND role = ?", startupID, role).Order("joined_at ASC").Find(&members).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list members by role: %w", err)
	}
	return members, nil
}

// CountByStartup 统计项目成员数
func (r *MemberRepository) CountByStartup(ctx context.Context, startupID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.CountByStartup")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.StartupMember{}).Where("startup_id = ?", startupID).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// UpdateRole 更新成员角色
func (r *MemberRepository) UpdateRole(ctx context.Context, startupID, userID string, role entity.MemberRole) error {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.UpdateRole")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Model(&entity.StartupMember{}).
		Where("startup_id = ? AND user_id = ?", startupID, userID).
		Update("role", role).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return nil
}

// Delete 删除成员关系
func (r *MemberRepository) Delete(ctx context.Context, startupID, userID string) error {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.StartupMember{}, "startup_id = ? AND user_id = ?", startupID, userID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// DeleteByRole 删除指定角色的成员关系
func (r *MemberRepository) DeleteByRole(ctx context.Context, startupID, userID string, role entity.MemberRole) error {
	ctx, span := tracer.Start(ctx, "postgres.MemberRepository.DeleteByRole")
	defer span.End()

	db := getDB(ctx, r.client.db)
	err := db.Delete(&entity.StartupMember{}, "startup_id = ? AND user_id = ? AND role = ?", startupID, userID, role).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete member by role: %w", err)
	}
	return nil
}
