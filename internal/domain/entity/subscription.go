// Package entity 定义领域实体
package entity

import (
	"time"
)

// Subscription 项目订阅记录
type Subscription struct {
	ID        string           `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID string           `json:"startup_id" gorm:"type:uuid;uniqueIndex;not null"`
	Plan      SubscriptionPlan `json:"plan" gorm:"type:varchar(50);default:'free'"`
	Status    string           `json:"status" gorm:"type:varchar(50);default:'active'"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription 创建免费订阅
func NewSubscription(startupID string) *Subscription {
	now := time.Now()
	return &Subscription{
		StartupID: startupID,
		Plan:      PlanFree,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
