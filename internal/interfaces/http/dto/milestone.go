// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"startupops-api/internal/domain/entity"
)

// CreateMilestoneRequest 创建里程碑请求
type CreateMilestoneRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
}

// UpdateMilestoneRequest 更新里程碑请求
// 缺省字段不修改; target_date 传空串时清空
type UpdateMilestoneRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TargetDate  *string `json:"target_date"`
	Status      *string `json:"status"`
}

// ApplyToMilestone 将请求字段应用到里程碑实体
func (r *UpdateMilestoneRequest) ApplyToMilestone(m *entity.Milestone) error {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Status != nil {
		m.Status = entity.MilestoneStatus(*r.Status)
	}
	if r.TargetDate != nil {
		if *r.TargetDate == "" {
			m.TargetDate = nil
		} else {
			d, err := entity.ParseDate(*r.TargetDate)
			if err != nil {
				return err
			}
			m.TargetDate = &d
		}
	}
	return nil
}

// MilestoneWithProgress 附带任务进度的里程碑响应
type MilestoneWithProgress struct {
	*entity.Milestone
	Progress  int   `json:"progress"`
	TaskCount int64 `json:"task_count"`
	TasksDone int64 `json:"tasks_done"`
}
