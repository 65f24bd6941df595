// Package entity 定义领域实体
package entity

import (
	"time"
)

// SwipeAction 投资人浏览操作
type SwipeAction string

const (
	SwipeActionInterested SwipeAction = "interested"
	SwipeActionPassed     SwipeAction = "passed"
)

// IsValidSwipeAction 检查操作是否合法
func IsValidSwipeAction(a SwipeAction) bool {
	return a == SwipeActionInterested || a == SwipeActionPassed
}

// InvestorSwipe 投资人对项目的浏览操作记录
type InvestorSwipe struct {
	ID         string      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvestorID string      `json:"investor_id" gorm:"type:uuid;index:idx_swipes_investor_startup,unique;not null"`
	StartupID  string      `json:"startup_id" gorm:"type:uuid;index:idx_swipes_investor_startup,unique;not null"`
	Action     SwipeAction `json:"action" gorm:"type:varchar(50);not null"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (InvestorSwipe) TableName() string {
	return "investor_swipes"
}

// NewInvestorSwipe 创建浏览操作记录
func NewInvestorSwipe(investorID, startupID string, action SwipeAction) *InvestorSwipe {
	return &InvestorSwipe{
		InvestorID: investorID,
		StartupID:  startupID,
		Action:     action,
		CreatedAt:  time.Now(),
	}
}
