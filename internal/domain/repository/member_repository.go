// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// MemberRepository 团队成员仓储接口
type MemberRepository interface {
	// Create 创建成员关系
	Create(ctx context.Context, member *entity.StartupMember) error

	// GetByStartupAndUser 获取用户在项目中的成员关系
	GetByStartupAndUser(ctx context.Context, startupID, userID string) (*entity.StartupMember, error)

	// ListByStartup 获取项目全部成员
	ListByStartup(ctx context.Context, startupID string) ([]*entity.StartupMember, error)

	// ListByUser 获取用户的全部成员关系
	ListByUser(ctx context.Context, userID string) ([]*entity.StartupMember, error)

	// ListByStartupAndRole 按角色获取项目成员
	ListByStartupAndRole(ctx context.Context, startupID string, role entity.MemberRole) ([]*entity.StartupMember, error)

	// CountByStartup 统计项目成员数
	CountByStartup(ctx context.Context, startupID string) (int64, error)

	// UpdateRole 更新成员角色
	UpdateRole(ctx context.Context, startupID, userID string, role entity.MemberRole) error

	// Delete 删除成员关系
	Delete(ctx context.Context, startupID, userID string) error

	// DeleteByRole 删除指定角色的成员关系
	DeleteByRole(ctx context.Context, startupID, userID string, role entity.MemberRole) error
}
