// Package entity 定义领域实体
package entity

import (
	"time"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// IsValidTaskStatus 检查任务状态是否合法
func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	default:
		return false
	}
}

// TaskPriority 任务优先级
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task 任务实体
type Task struct {
	ID          string       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID   string       `json:"startup_id" gorm:"type:uuid;index;not null"`
	Title       string       `json:"title" gorm:"type:varchar(255);not null"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(50);default:'todo'"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(50);default:'medium'"`
	AssignedTo  *string      `json:"assigned_to" gorm:"type:uuid;index"`
	CreatedBy   string       `json:"created_by" gorm:"type:uuid;not null"`
	MilestoneID *string      `json:"milestone_id" gorm:"type:uuid;index"`
	DueDate     *Date        `json:"due_date" gorm:"type:date"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Task) TableName() string {
	return "tasks"
}

// NewTask 创建新任务
func NewTask(startupID, title, createdBy string) *Task {
	now := time.Now()
	return &Task{
		StartupID: startupID,
		Title:     title,
		Status:    TaskStatusTodo,
		Priority:  TaskPriorityMedium,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAssignedTo 检查任务是否指派给指定用户
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
