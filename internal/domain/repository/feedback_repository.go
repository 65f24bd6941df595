// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// FeedbackRepository 反馈仓储接口
type FeedbackRepository interface {
	// Create 创建反馈
	Create(ctx context.Context, feedback *entity.Feedback) error

	// ListByStartup 获取项目反馈列表，按创建时间倒序
	ListByStartup(ctx context.Context, startupID string) ([]*entity.Feedback, error)
}
