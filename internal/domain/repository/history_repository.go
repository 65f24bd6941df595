// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"startupops-api/internal/domain/entity"
)

// HistoryRepository AI 生成历史仓储接口
type HistoryRepository interface {
	// Create 追加历史记录
	Create(ctx context.Context, record *entity.HistoryRecord) error

	// GetByID 根据 ID 获取历史记录
	GetByID(ctx context.Context, id string) (*entity.HistoryRecord, error)

	// GetByStartupAndID 获取项目下指定历史记录
	GetByStartupAndID(ctx context.Context, startupID, id string) (*entity.HistoryRecord, error)

	// ListByStartup 获取项目历史记录，可按类型过滤，按创建时间倒序
	ListByStartup(ctx context.Context, startupID string, types []entity.HistoryType, limit int) ([]*entity.HistoryRecord, error)

	// Delete 删除历史记录
	Delete(ctx context.Context, id string) error
}
