// Package router 提供 HTTP 路由配置
package router

import (
	"startupops-api/internal/config"
	"startupops-api/internal/infrastructure/identity"
	"startupops-api/internal/interfaces/http/handler"
	"startupops-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterHandlers 聚合全部 HTTP 处理器
type RouterHandlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Startup      *handler.StartupHandler
	Task         *handler.TaskHandler
	Milestone    *handler.MilestoneHandler
	Feedback     *handler.FeedbackHandler
	Analytics    *handler.AnalyticsHandler
	AI           *handler.AIHandler
	History      *handler.HistoryHandler
	Team         *handler.TeamHandler
	Subscription *handler.SubscriptionHandler
	Finance      *handler.FinanceHandler
	Investor     *handler.InvestorHandler
}

// Router HTTP 路由器
type Router struct {
	engine     *gin.Engine
	cfg        *config.Config
	handlers   RouterHandlers
	verifier   middleware.TokenVerifier
	tokenCache *identity.TokenCache
	limiter    middleware.RateLimiter
}

// NewWithDeps 创建注入全部依赖的路由器
func NewWithDeps(
	cfg *config.Config,
	handlers RouterHandlers,
	verifier middleware.TokenVerifier,
	tokenCache *identity.TokenCache,
	limiter middleware.RateLimiter,
) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:     gin.New(),
		cfg:        cfg,
		handlers:   handlers,
		verifier:   verifier,
		tokenCache: tokenCache,
		limiter:    limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	// 审计日志中间件
	r.engine.Use(middleware.AuditWithConfig(middleware.AuditConfig{
		Enabled:   true,
		SkipPaths: middleware.DefaultAuditSkipPaths,
	}))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := r.engine.Group("/api")

	// 无需认证的端点
	api.GET("/", h.Health.Root)
	api.POST("/auth/signup", h.Auth.Signup)

	// 其余 API 均要求 Bearer Token
	authed := api.Group("")
	authed.Use(middleware.Auth(r.verifier, r.tokenCache))
	RegisterAPIRoutes(authed, r.cfg, h, r.limiter)
}
