// Package entity 定义领域实体
package entity

import (
	"time"
)

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

// Milestone 里程碑实体
type Milestone struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID   string          `json:"startup_id" gorm:"type:uuid;index;not null"`
	Title       string          `json:"title" gorm:"type:varchar(255);not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	TargetDate  *Date           `json:"target_date" gorm:"type:date"`
	Status      MilestoneStatus `json:"status" gorm:"type:varchar(50);default:'pending'"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Milestone) TableName() string {
	return "milestones"
}

// NewMilestone 创建新里程碑
func NewMilestone(startupID, title string) *Milestone {
	now := time.Now()
	return &Milestone{
		StartupID: startupID,
		Title:     title,
		Status:    MilestoneStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
