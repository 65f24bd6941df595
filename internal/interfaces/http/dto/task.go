// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"startupops-api/internal/domain/entity"
)

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to"`
	MilestoneID string `json:"milestone_id"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskRequest 更新任务请求
// 缺省字段不修改; assigned_to/milestone_id/due_date 传空串时清空
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assigned_to"`
	MilestoneID *string `json:"milestone_id"`
	DueDate     *string `json:"due_date"`
}

// ApplyToTask 将请求字段应用到任务实体
func (r *UpdateTaskRequest) ApplyToTask(t *entity.Task) error {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Status != nil {
		t.Status = entity.TaskStatus(*r.Status)
	}
	if r.Priority != nil {
		t.Priority = entity.TaskPriority(*r.Priority)
	}
	if r.AssignedTo != nil {
		if *r.AssignedTo == "" {
			t.AssignedTo = nil
		} else {
			t.AssignedTo = r.AssignedTo
		}
	}
	if r.MilestoneID != nil {
		if *r.MilestoneID == "" {
			t.MilestoneID = nil
		} else {
			t.MilestoneID = r.MilestoneID
		}
	}
	if r.DueDate != nil {
		if *r.DueDate == "" {
			t.DueDate = nil
		} else {
			d, err := entity.ParseDate(*r.DueDate)
			if err != nil {
				return err
			}
			t.DueDate = &d
		}
	}
	return nil
}

// UpdateTaskStatusRequest 更新任务状态请求
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
