package insight

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	wfchain "startupops-api/internal/workflow/chain"
	"startupops-api/pkg/errors"
)

type fakeChatModel struct {
	reply    string
	err      error
	received []*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.received = input
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.reply}, nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

type fakeFactory struct {
	chatModel model.BaseChatModel
}

func (f *fakeFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	return f.chatModel, nil
}

type stubStartupRepo struct {
	repository.StartupRepository
	startup *entity.Startup
	err     error
}

func (s *stubStartupRepo) GetByID(ctx context.Context, id string) (*entity.Startup, error) {
	return s.startup, s.err
}

type stubHistoryRepo struct {
	repository.HistoryRepository
	created *entity.HistoryRecord
	err     error
}

func (s *stubHistoryRepo) Create(ctx context.Context, record *entity.HistoryRecord) error {
	s.created = record
	return s.err
}

type stubTaskRepo struct {
	repository.TaskRepository
	tasks []*entity.Task
}

func (s *stubTaskRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Task, error) {
	return s.tasks, nil
}

type stubMilestoneRepo struct {
	repository.MilestoneRepository
}

func (s *stubMilestoneRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Milestone, error) {
	return nil, nil
}

type stubFeedbackRepo struct {
	repository.FeedbackRepository
}

func (s *stubFeedbackRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Feedback, error) {
	return nil, nil
}

type stubMemberRepo struct {
	repository.MemberRepository
}

func (s *stubMemberRepo) CountByStartup(ctx context.Context, startupID string) (int64, error) {
	return 3, nil
}

func newTestService(chatModel *fakeChatModel, startupRepo *stubStartupRepo, historyRepo *stubHistoryRepo) *Service {
	analyticsService := analytics.NewService(
		&stubTaskRepo{tasks: []*entity.Task{
			{Status: entity.TaskStatusDone, Priority: entity.TaskPriorityHigh},
			{Status: entity.TaskStatusInProgress, Priority: entity.TaskPriorityMedium},
			{Status: entity.TaskStatusTodo, Priority: entity.TaskPriorityLow},
		}},
		&stubMilestoneRepo{},
		&stubFeedbackRepo{},
		&stubMemberRepo{},
	)
	chain := wfchain.NewInsightChain(&fakeFactory{chatModel: chatModel})
	return NewService(chain, startupRepo, analyticsService, historyRepo)
}

func TestGenerateInsight(t *testing.T) {
	chatModel := &fakeChatModel{reply: "1. Double down on onboarding.\n2. Close the feedback loop."}
	historyRepo := &stubHistoryRepo{}
	svc := newTestService(chatModel,
		&stubStartupRepo{startup: &entity.Startup{ID: "startup-1", Name: "Acme", Industry: "Fintech", Stage: entity.StartupStageMVP}},
		historyRepo,
	)

	result, err := svc.Generate(context.Background(), &GenerateParams{
		StartupID:  "startup-1",
		UserID:     "user-1",
		PromptType: "general",
	})

	require.NoError(t, err)
	assert.Equal(t, "1. Double down on onboarding.\n2. Close the feedback loop.", result.Insights)
	assert.Equal(t, "general", result.PromptType)

	// 提示词由项目元数据和经营快照渲染
	require.Len(t, chatModel.received, 2)
	user := chatModel.received[1].Content
	assert.Contains(t, user, "Startup: Acme (Fintech - mvp stage)")
	assert.Contains(t, user, "Total tasks: 3, Done: 1, In Progress: 1")

	// 生成历史落库
	require.NotNil(t, historyRepo.created)
	assert.Equal(t, entity.HistoryTypeInsight, historyRepo.created.Type)
	assert.Equal(t, "general", historyRepo.created.Subtype)
	assert.Equal(t, result.Insights, historyRepo.created.Content)
	assert.Equal(t, "user-1", historyRepo.created.CreatedBy)
	assert.Equal(t, "general", historyRepo.created.Metadata["prompt_type"])
}

func TestGenerateInsightHistoryFailureIsBestEffort(t *testing.T) {
	svc := newTestService(&fakeChatModel{reply: "insights"},
		&stubStartupRepo{startup: &entity.Startup{ID: "startup-1", Name: "Acme"}},
		&stubHistoryRepo{err: assert.AnError},
	)

	result, err := svc.Generate(context.Background(), &GenerateParams{StartupID: "startup-1", UserID: "user-1", PromptType: "tasks"})

	// 历史写入失败不影响生成结果
	require.NoError(t, err)
	assert.Equal(t, "insights", result.Insights)
}

func TestGenerateInsightModelFailure(t *testing.T) {
	historyRepo := &stubHistoryRepo{}
	svc := newTestService(&fakeChatModel{err: assert.AnError},
		&stubStartupRepo{startup: &entity.Startup{ID: "startup-1"}},
		historyRepo,
	)

	_, err := svc.Generate(context.Background(), &GenerateParams{StartupID: "startup-1", PromptType: "general"})

	require.Error(t, err)
	assert.Equal(t, errors.CodeGenerationFailed, errors.AsAppError(err).Code)
	assert.Nil(t, historyRepo.created)
}

func TestGenerateInsightMissingStartup(t *testing.T) {
	chatModel := &fakeChatModel{reply: "insights"}
	svc := newTestService(chatModel, &stubStartupRepo{startup: nil}, &stubHistoryRepo{})

	_, err := svc.Generate(context.Background(), &GenerateParams{StartupID: "gone", PromptType: "general"})

	// 项目不存在时按模板兜底值生成
	require.NoError(t, err)
	assert.Contains(t, chatModel.received[1].Content, "Startup: Unknown (Unknown - idea stage)")
}

func TestGenerateInsightStartupLookupError(t *testing.T) {
	svc := newTestService(&fakeChatModel{reply: "insights"}, &stubStartupRepo{err: assert.AnError}, &stubHistoryRepo{})

	_, err := svc.Generate(context.Background(), &GenerateParams{StartupID: "startup-1"})

	assert.ErrorIs(t, err, assert.AnError)
}
