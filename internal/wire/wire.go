//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/application/insight"
	"startupops-api/internal/application/pitch"
	"startupops-api/internal/config"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/infrastructure/identity"
	"startupops-api/internal/infrastructure/llm"
	"startupops-api/internal/infrastructure/persistence/postgres"
	"startupops-api/internal/infrastructure/persistence/redis"
	"startupops-api/internal/interfaces/http/handler"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/internal/interfaces/http/router"
	"startupops-api/internal/render/pptx"
	"startupops-api/internal/workflow/chain"
	"startupops-api/internal/workflow/port"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		IdentitySet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewProfileRepository,
	postgres.NewStartupRepository,
	postgres.NewMemberRepository,
	postgres.NewTaskRepository,
	postgres.NewMilestoneRepository,
	postgres.NewFeedbackRepository,
	postgres.NewIncomeRepository,
	postgres.NewExpenseRepository,
	postgres.NewInvestmentRepository,
	postgres.NewSubscriptionRepository,
	postgres.NewSwipeRepository,
	postgres.NewHistoryRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.ProfileRepository), new(*postgres.ProfileRepository)),
	wire.Bind(new(repository.StartupRepository), new(*postgres.StartupRepository)),
	wire.Bind(new(repository.MemberRepository), new(*postgres.MemberRepository)),
	wire.Bind(new(repository.TaskRepository), new(*postgres.TaskRepository)),
	wire.Bind(new(repository.MilestoneRepository), new(*postgres.MilestoneRepository)),
	wire.Bind(new(repository.FeedbackRepository), new(*postgres.FeedbackRepository)),
	wire.Bind(new(repository.IncomeRepository), new(*postgres.IncomeRepository)),
	wire.Bind(new(repository.ExpenseRepository), new(*postgres.ExpenseRepository)),
	wire.Bind(new(repository.InvestmentRepository), new(*postgres.InvestmentRepository)),
	wire.Bind(new(repository.SubscriptionRepository), new(*postgres.SubscriptionRepository)),
	wire.Bind(new(repository.SwipeRepository), new(*postgres.SwipeRepository)),
	wire.Bind(new(repository.HistoryRepository), new(*postgres.HistoryRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// IdentitySet 身份服务提供者集合
var IdentitySet = wire.NewSet(
	ProvideIdentityClient,
	ProvideTokenCache,
	wire.Bind(new(middleware.TokenVerifier), new(*identity.Client)),
)

// GenerationSet AI 生成链路提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(port.ChatModelFactory), new(*llm.EinoFactory)),
	chain.NewInsightChain,
	chain.NewPitchChain,
	pptx.NewWriter,
	analytics.NewService,
	insight.NewService,
	pitch.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewAuthHandler,
	handler.NewStartupHandler,
	handler.NewTaskHandler,
	handler.NewMilestoneHandler,
	handler.NewFeedbackHandler,
	handler.NewAnalyticsHandler,
	handler.NewAIHandler,
	handler.NewHistoryHandler,
	handler.NewTeamHandler,
	handler.NewSubscriptionHandler,
	handler.NewFinanceHandler,
	handler.NewInvestorHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideIdentityClient 提供身份服务客户端
func ProvideIdentityClient(cfg *config.Config) *identity.Client {
	return identity.NewClient(&cfg.Identity)
}

// ProvideTokenCache 提供令牌验证结果缓存
func ProvideTokenCache(cfg *config.Config) *identity.TokenCache {
	return identity.NewTokenCache(&cfg.Identity.TokenCache)
}
