// Package entity 定义领域实体
package entity

import (
	"time"
)

// Feedback 用户/市场反馈记录
type Feedback struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID   string    `json:"startup_id" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Content     string    `json:"content,omitempty" gorm:"type:text"`
	Category    string    `json:"category" gorm:"type:varchar(100);default:'product'"`
	Rating      int       `json:"rating" gorm:"default:3"`
	SubmittedBy string    `json:"submitted_by" gorm:"type:uuid;not null"`
	Source      string    `json:"source" gorm:"type:varchar(100);default:'internal'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Feedback) TableName() string {
	return "feedback"
}

// NewFeedback 创建反馈记录
func NewFeedback(startupID, title, content, submittedBy string) *Feedback {
	return &Feedback{
		StartupID:   startupID,
		Title:       title,
		Content:     content,
		Category:    "product",
		Rating:      3,
		SubmittedBy: submittedBy,
		Source:      "internal",
		CreatedAt:   time.Now(),
	}
}
