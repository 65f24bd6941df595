// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"startupops-api/internal/domain/entity"
)

// SwipeRequest 投资人浏览操作请求
type SwipeRequest struct {
	Action string `json:"action" binding:"required"`
}

// StartupCardMetrics 浏览卡片上的运营摘要, 可缓存
type StartupCardMetrics struct {
	TotalRaised         float64 `json:"total_raised"`
	MilestonesTotal     int     `json:"milestones_total"`
	MilestonesCompleted int     `json:"milestones_completed"`
	TeamSize            int     `json:"team_size"`
}

// StartupCard 投资人浏览卡片: 项目信息附加运营摘要
type StartupCard struct {
	*entity.Startup
	StartupCardMetrics
}

// MatchedStartup 投资人已匹配的项目, 附加创始人联系方式
type MatchedStartup struct {
	*entity.Startup
	SwipedAt     time.Time `json:"swiped_at"`
	FounderName  string    `json:"founder_name,omitempty"`
	FounderEmail string    `json:"founder_email,omitempty"`
}

// InvestorViewMetrics 投资人视角的项目经营指标
type InvestorViewMetrics struct {
	TasksCompleted      int     `json:"tasks_completed"`
	TasksTotal          int     `json:"tasks_total"`
	MilestonesCompleted int     `json:"milestones_completed"`
	MilestonesTotal     int     `json:"milestones_total"`
	TotalIncome         float64 `json:"total_income"`
	TotalExpenses       float64 `json:"total_expenses"`
	TotalRaised         float64 `json:"total_raised"`
	CurrentBalance      float64 `json:"current_balance"`
	TeamSize            int     `json:"team_size"`
	MonthlyBurn         float64 `json:"monthly_burn"`
	Runway              float64 `json:"runway"`
}

// InvestorViewResponse 投资人视角响应
type InvestorViewResponse struct {
	Startup *entity.Startup     `json:"startup"`
	Metrics InvestorViewMetrics `json:"metrics"`
}
