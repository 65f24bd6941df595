// Package router 提供 HTTP 路由配置
package router

import (
	"startupops-api/internal/config"
	"startupops-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册认证后的 API 路由
func RegisterAPIRoutes(api *gin.RouterGroup, cfg *config.Config, h RouterHandlers, limiter middleware.RateLimiter) {
	// 认证与档案
	auth := api.Group("/auth")
	{
		auth.POST("/verify", h.Auth.Verify)
		auth.GET("/me", h.Auth.Me)
		auth.PUT("/profile", h.Auth.UpdateProfile)
	}

	// 创业项目
	startups := api.Group("/startups")
	{
		startups.POST("", h.Startup.Create)
		startups.GET("", h.Startup.List)
		startups.POST("/join", h.Startup.Join)
		startups.GET("/:id", h.Startup.Get)
		startups.PUT("/:id", h.Startup.Update)

		// 项目下的任务与里程碑
		startups.POST("/:id/tasks", h.Task.Create)
		startups.GET("/:id/tasks", h.Task.List)
		startups.POST("/:id/milestones", h.Milestone.Create)
		startups.GET("/:id/milestones", h.Milestone.List)

		// 反馈与运营分析
		startups.POST("/:id/feedback", h.Feedback.Create)
		startups.GET("/:id/feedback", h.Feedback.List)
		startups.GET("/:id/analytics", h.Analytics.Get)

		// 团队成员
		startups.GET("/:id/members", h.Team.Members)
		startups.DELETE("/:id/members/:userID", h.Team.RemoveMember)
		startups.PUT("/:id/members/:userID/role", h.Team.UpdateRole)
		startups.GET("/:id/invite-code", h.Team.InviteCode)
		startups.POST("/:id/regenerate-invite", h.Team.RegenerateInvite)

		// 项目投资人
		startups.GET("/:id/investors", h.Team.Investors)
		startups.POST("/:id/investors/invite", h.Team.InviteInvestor)
		startups.DELETE("/:id/investors/:userID", h.Team.RemoveInvestor)
		startups.GET("/:id/investor-view", h.Investor.InvestorView)

		// 订阅
		startups.GET("/:id/subscription", h.Subscription.Get)
		startups.POST("/:id/subscription", h.Subscription.Update)

		// 财务
		finance := startups.Group("/:id/finance")
		{
			finance.POST("/income", h.Finance.CreateIncome)
			finance.GET("/income", h.Finance.ListIncome)
			finance.DELETE("/income/:recordID", h.Finance.DeleteIncome)
			finance.POST("/expenses", h.Finance.CreateExpense)
			finance.GET("/expenses", h.Finance.ListExpenses)
			finance.DELETE("/expenses/:recordID", h.Finance.DeleteExpense)
			finance.POST("/investments", h.Finance.CreateInvestment)
			finance.GET("/investments", h.Finance.ListInvestments)
			finance.DELETE("/investments/:recordID", h.Finance.DeleteInvestment)
			finance.GET("/summary", h.Finance.Summary)
		}
	}

	// 任务管理
	tasks := api.Group("/tasks")
	{
		tasks.PUT("/:id", h.Task.Update)
		tasks.DELETE("/:id", h.Task.Delete)
		tasks.PATCH("/:id/status", h.Task.UpdateStatus)
	}

	// 里程碑管理
	milestones := api.Group("/milestones")
	{
		milestones.PUT("/:id", h.Milestone.Update)
		milestones.DELETE("/:id", h.Milestone.Delete)
	}

	// AI 生成, 独立限流
	ai := api.Group("/ai", middleware.RateLimit(cfg.Security.RateLimit, limiter))
	{
		ai.POST("/insights", h.AI.Insights)
		ai.POST("/pitch", h.AI.Pitch)
		ai.POST("/pitch/download", h.AI.PitchDownload)
	}

	// 生成历史
	history := api.Group("/ai/history")
	{
		history.GET("/:id", h.History.List)
		history.GET("/:id/:historyID", h.History.Get)
		history.POST("", h.History.Save)
		history.DELETE("/:historyID", h.History.Delete)
	}

	// 投资人匹配
	investor := api.Group("/investor")
	{
		investor.GET("/browse", h.Investor.Browse)
		investor.POST("/swipe/:startupID", h.Investor.Swipe)
		investor.GET("/matches", h.Investor.Matches)
		investor.DELETE("/matches/:startupID", h.Investor.RemoveMatch)
	}
}
