// Package pitch 提供 AI 路演文稿生成与导出服务
package pitch

import (
	"context"
	"encoding/json"
	"time"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/render/pptx"
	wfchain "startupops-api/internal/workflow/chain"
	wfmodel "startupops-api/internal/workflow/model"
	"startupops-api/pkg/errors"
	"startupops-api/pkg/logger"
	"startupops-api/pkg/metrics"
)

// GenerateParams 路演文稿生成参数
type GenerateParams struct {
	StartupID    string
	UserID       string
	CustomPrompt string
	Provider     string
}

// GenerateResult 路演文稿生成结果
type GenerateResult struct {
	Deck        wfmodel.SlideDeck
	Content     string
	StartupName string
	Tier        string
}

// DownloadResult 渲染后的演示文档
type DownloadResult struct {
	Filename string
	Data     []byte
}

// Service 路演文稿生成服务
type Service struct {
	chain       *wfchain.PitchChain
	startupRepo repository.StartupRepository
	analytics   *analytics.Service
	historyRepo repository.HistoryRepository
	renderer    *pptx.Writer
}

// NewService 创建路演文稿生成服务
func NewService(
	chain *wfchain.PitchChain,
	startupRepo repository.StartupRepository,
	analyticsService *analytics.Service,
	historyRepo repository.HistoryRepository,
	renderer *pptx.Writer,
) *Service {
	return &Service{
		chain:       chain,
		startupRepo: startupRepo,
		analytics:   analyticsService,
		historyRepo: historyRepo,
		renderer:    renderer,
	}
}

// Generate 生成路演文稿并尽力写入生成历史
func (s *Service) Generate(ctx context.Context, params *GenerateParams) (*GenerateResult, error) {
	result, err := s.generate(ctx, params)
	if err != nil {
		return nil, err
	}

	s.recordHistory(ctx, params, result)
	return result, nil
}

// Download 生成路演文稿并渲染为演示文档, 不写生成历史
func (s *Service) Download(ctx context.Context, params *GenerateParams) (*DownloadResult, error) {
	result, err := s.generate(ctx, params)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.Render(result.Deck)
	if err != nil {
		return nil, err
	}

	return &DownloadResult{
		Filename: pptx.Filename(result.StartupName),
		Data:     data,
	}, nil
}

// generate 聚合运营数据并调用模型生成文稿
func (s *Service) generate(ctx context.Context, params *GenerateParams) (*GenerateResult, error) {
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

	in := &wfmodel.PitchGenerateInput{
		TeamSize:           snap.TeamSize,
		TaskTotal:          snap.TotalTasks,
		TaskDone:           snap.CompletedTasks,
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
		in.Description = startup.Description
	}

	out, err := s.chain.Invoke(ctx, in)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues("pitch", "error").Inc()
		return nil, errors.ErrGenerationFailed.WithError(err)
	}

	content, err := json.Marshal(out.Deck)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues("pitch", "error").Inc()
		return nil, errors.ErrGenerationFailed.WithError(err)
	}

	metrics.GenerationTotal.WithLabelValues("pitch", "success").Inc()
	metrics.GenerationDuration.WithLabelValues("pitch").Observe(time.Since(start).Seconds())
	metrics.PitchSlideCount.Observe(float64(out.Deck.SlideCount()))

	return &GenerateResult{
		Deck:        out.Deck,
		Content:     string(content),
		StartupName: in.StartupName,
		Tier:        out.Tier,
	}, nil
}

// recordHistory 尽力写入生成历史, 失败只记日志与指标, 不影响响应
func (s *Service) recordHistory(ctx context.Context, params *GenerateParams, result *GenerateResult) {
	record := entity.NewHistoryRecord(
		params.StartupID,
		entity.HistoryTypePitch,
		"pitch_deck",
		result.Content,
		params.UserID,
		entity.HistoryMetadata{"slide_count": result.Deck.SlideCount()},
	)
	if err := s.historyRepo.Create(ctx, record); err != nil {
		metrics.HistoryWriteFailures.WithLabelValues("pitch").Inc()
		logger.Warn(ctx, "failed to save pitch history",
			"startup_id", params.StartupID,
			"error", err.Error(),
		)
	}
}
