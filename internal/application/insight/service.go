// Package insight 提供 AI 运营洞察生成服务
package insight

import (
	"context"
	"time"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	wfchain "startupops-api/internal/workflow/chain"
	wfmodel "startupops-api/internal/workflow/model"
	"startupops-api/pkg/errors"
	"startupops-api/pkg/logger"
	"startupops-api/pkg/metrics"
)

// GenerateParams 洞察生成参数
type GenerateParams struct {
	StartupID    string
	UserID       string
	PromptType   string
	CustomPrompt string
	Provider     string
}

// GenerateResult 洞察生成结果
// PromptType 原样回显请求值, 未知类型仅在提示词选择时回退为 general
type GenerateResult struct {
	Insights   string
	PromptType string
}

// Service 洞察生成服务
type Service struct {
	chain       *wfchain.InsightChain
	startupRepo repository.StartupRepository
	analytics   *analytics.Service
	historyRepo repository.HistoryRepository
}

// NewService 创建洞察生成服务
func NewService(
	chain *wfchain.InsightChain,
	startupRepo repository.StartupRepository,
	analyticsService *analytics.Service,
	historyRepo repository.HistoryRepository,
) *Service {
	return &Service{
		chain:       chain,
		startupRepo: startupRepo,
		analytics:   analyticsService,
		historyRepo: historyRepo,
	}
}

// Generate 聚合运营数据、调用模型生成洞察, 并尽力写入生成历史
func (s *Service) Generate(ctx context.Context, params *GenerateParams) (*GenerateResult, error) {
	metrics.ActiveGenerations.Inc()
	defer metrics.ActiveGenerations.Dec()
	start := time.Now()

	startup, err := s.startupRepo.GetByID(ctx, params.StartupID)
	if err != nil {
		return nil, err
	}

	snap, err := s.analytics.Snapshot(ctx, params.StartupID)
	if err != nil {
		return nil, err
	}

	in := &wfmodel.InsightGenerateInput{
		Kind:               wfmodel.InsightKind(params.PromptType),
		TaskTotal:          snap.TotalTasks,
		TaskDone:           snap.CompletedTasks,
		TaskInProgress:     snap.TasksInProgress(),
		MilestoneTotal:     snap.TotalMilestones,
		MilestoneCompleted: snap.MilestonesCompleted(),
		FeedbackCount:      snap.TotalFeedback,
		FeedbackAvgRating:  snap.AvgRating,
		CustomPrompt:       params.CustomPrompt,
		Provider:           params.Provider,
	}
	// 项目不存在时按空元数据生成, 提示词模板内有兜底值
	if startup != nil {
		in.StartupName = startup.Name
		in.Industry = startup.Industry
		in.Stage = string(startup.Stage)
	}

	msg, err := s.chain.Invoke(ctx, in)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues("insight", "error").Inc()
		return nil, errors.ErrGenerationFailed.WithError(err)
	}

	metrics.GenerationTotal.WithLabelValues("insight", "success").Inc()
	metrics.GenerationDuration.WithLabelValues("insight").Observe(time.Since(start).Seconds())

	s.recordHistory(ctx, params, msg.Content)

	return &GenerateResult{
		Insights:   msg.Content,
		PromptType: params.PromptType,
	}, nil
}

// recordHistory 尽力写入生成历史, 失败只记日志与指标, 不影响响应
func (s *Service) recordHistory(ctx context.Context, params *GenerateParams, content string) {
	record := entity.NewHistoryRecord(
		params.StartupID,
		entity.HistoryTypeInsight,
		params.PromptType,
		content,
		params.UserID,
		entity.HistoryMetadata{"prompt_type": params.PromptType},
	)
	if err := s.historyRepo.Create(ctx, record); err != nil {
		metrics.HistoryWriteFailures.WithLabelValues("insight").Inc()
		logger.Warn(ctx, "failed to save insight history",
			"startup_id", params.StartupID,
			"error", err.Error(),
		)
	}
}
