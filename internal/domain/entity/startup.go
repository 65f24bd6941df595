// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StartupStage 创业阶段
type StartupStage string

const (
	StartupStageIdea   StartupStage = "idea"
	StartupStageMVP    StartupStage = "mvp"
	StartupStageGrowth StartupStage = "growth"
	// StartupStageActive 投资人组合项目使用的阶段标记
	StartupStageActive StartupStage = "active"
)

// SubscriptionPlan 订阅计划
type SubscriptionPlan string

const (
	PlanFree        SubscriptionPlan = "free"
	PlanPro         SubscriptionPlan = "pro"
	PlanInvestorPro SubscriptionPlan = "investor_pro"
)

// FreePlanTeamLimit 免费计划的团队人数上限
const FreePlanTeamLimit = 5

// TeamLimit 返回指定计划下的团队人数上限
func TeamLimit(plan SubscriptionPlan) int {
	if plan == PlanFree || plan == "" {
		return FreePlanTeamLimit
	}
	return 999
}

// Startup 创业项目实体
type Startup struct {
	ID               string           `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string           `json:"name" gorm:"type:varchar(255);not null"`
	Description      string           `json:"description,omitempty" gorm:"type:text"`
	Industry         string           `json:"industry,omitempty" gorm:"type:varchar(100)"`
	Stage            StartupStage     `json:"stage" gorm:"type:varchar(50);default:'idea'"`
	Website          string           `json:"website,omitempty" gorm:"type:text"`
	FounderID        string           `json:"created_by" gorm:"column:created_by;type:uuid;index;not null"`
	InviteCode       string           `json:"invite_code" gorm:"type:varchar(16);uniqueIndex;not null"`
	SubscriptionPlan SubscriptionPlan `json:"subscription_plan" gorm:"type:varchar(50);default:'free'"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Startup) TableName() string {
	return "startups"
}

// NewStartup 创建新的创业项目
func NewStartup(name, description, industry string, stage StartupStage, website, founderID string) *Startup {
	if stage == "" {
		stage = StartupStageIdea
	}
	now := time.Now()
	return &Startup{
		Name:             name,
		Description:      description,
		Industry:         industry,
		Stage:            stage,
		Website:          website,
		FounderID:        founderID,
		InviteCode:       NewInviteCode(),
		SubscriptionPlan: PlanFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewPortfolioStartup 为投资人创建组合容器项目
func NewPortfolioStartup(founderID, founderName string) *Startup {
	s := NewStartup(founderName+" Portfolio", "Investor Portfolio", "Investment", StartupStageActive, "", founderID)
	s.SubscriptionPlan = PlanInvestorPro
	return s
}

// NewInviteCode 生成 8 位大写十六进制邀请码
func NewInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// TeamLimit 返回该项目当前计划下的团队人数上限
func (s *Startup) TeamLimit() int {
	return TeamLimit(s.SubscriptionPlan)
}
