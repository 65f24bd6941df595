package pitch

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/render/pptx"
	wfchain "startupops-api/internal/workflow/chain"
	wfnode "startupops-api/internal/workflow/node"
	"startupops-api/pkg/errors"
)

type fakeChatModel struct {
	reply string
	err   error
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
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
}

func (s *stubStartupRepo) GetByID(ctx context.Context, id string) (*entity.Startup, error) {
	return s.startup, nil
}

type stubHistoryRepo struct {
	repository.HistoryRepository
	created *entity.HistoryRecord
}

func (s *stubHistoryRepo) Create(ctx context.Context, record *entity.HistoryRecord) error {
	s.created = record
	return nil
}

type stubTaskRepo struct{ repository.TaskRepository }

func (s *stubTaskRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Task, error) {
	return nil, nil
}

type stubMilestoneRepo struct{ repository.MilestoneRepository }

func (s *stubMilestoneRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Milestone, error) {
	return nil, nil
}

type stubFeedbackRepo struct{ repository.FeedbackRepository }

func (s *stubFeedbackRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Feedback, error) {
	return nil, nil
}

type stubMemberRepo struct{ repository.MemberRepository }

func (s *stubMemberRepo) CountByStartup(ctx context.Context, startupID string) (int64, error) {
	return 2, nil
}

func newTestService(chatModel *fakeChatModel, historyRepo *stubHistoryRepo) *Service {
	analyticsService := analytics.NewService(&stubTaskRepo{}, &stubMilestoneRepo{}, &stubFeedbackRepo{}, &stubMemberRepo{})
	chain := wfchain.NewPitchChain(&fakeFactory{chatModel: chatModel})
	startupRepo := &stubStartupRepo{startup: &entity.Startup{
		ID:          "startup-1",
		Name:        "Acme Corp",
		Industry:    "Fintech",
		Stage:       entity.StartupStageMVP,
		Description: "Payments for SMBs",
	}}
	return NewService(chain, startupRepo, analyticsService, historyRepo, pptx.NewWriter())
}

func TestGeneratePitchDeck(t *testing.T) {
	historyRepo := &stubHistoryRepo{}
	svc := newTestService(&fakeChatModel{
		reply: "```json\n{\"title\":\"Acme Pitch\",\"slides\":[{\"title\":\"Problem\",\"content\":[\"SMB payments are slow\"]}]}\n```",
	}, historyRepo)

	result, err := svc.Generate(context.Background(), &GenerateParams{StartupID: "startup-1", UserID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, "Acme Pitch", result.Deck.Title)
	assert.Equal(t, string(wfnode.TierDirect), result.Tier)
	assert.Equal(t, "Acme Corp", result.StartupName)
	// Content 为规范化后文稿的 JSON 序列化
	assert.JSONEq(t, `{"title":"Acme Pitch","slides":[{"title":"Problem","content":["SMB payments are slow"]}]}`, result.Content)

	require.NotNil(t, historyRepo.created)
	assert.Equal(t, entity.HistoryTypePitch, historyRepo.created.Type)
	assert.Equal(t, "pitch_deck", historyRepo.created.Subtype)
	assert.Equal(t, result.Content, historyRepo.created.Content)
	assert.Equal(t, 1, historyRepo.created.Metadata["slide_count"])
}

func TestGeneratePitchFallsBackOnGarbage(t *testing.T) {
	svc := newTestService(&fakeChatModel{reply: "As an AI language model, I cannot..."}, &stubHistoryRepo{})

	result, err := svc.Generate(context.Background(), &GenerateParams{StartupID: "startup-1", UserID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, string(wfnode.TierFallback), result.Tier)
	require.Len(t, result.Deck.Slides, 5)
	assert.Equal(t, "Title Slide", result.Deck.Slides[0].Title)
	assert.Contains(t, result.Deck.Slides[0].Content, "Acme Corp")
}

func TestGeneratePitchModelFailure(t *testing.T) {
	svc := newTestService(&fakeChatModel{err: assert.AnError}, &stubHistoryRepo{})

	_, err := svc.Generate(context.Background(), &GenerateParams{StartupID: "startup-1"})

	require.Error(t, err)
	assert.Equal(t, errors.CodeGenerationFailed, errors.AsAppError(err).Code)
}

func TestDownloadRendersPresentation(t *testing.T) {
	historyRepo := &stubHistoryRepo{}
	svc := newTestService(&fakeChatModel{
		reply: `{"title":"Acme Pitch","slides":[{"title":"Problem","content":["SMB payments are slow"]},{"title":"Solution","content":["One-click settlement"]}]}`,
	}, historyRepo)

	result, err := svc.Download(context.Background(), &GenerateParams{StartupID: "startup-1", UserID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, "acme_corp_pitch.pptx", result.Filename)

	zr, err := zip.NewReader(bytes.NewReader(result.Data), int64(len(result.Data)))
	require.NoError(t, err)
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["ppt/slides/slide1.xml"])
	assert.True(t, names["ppt/slides/slide2.xml"])

	// 下载不写生成历史
	assert.Nil(t, historyRepo.created)
}

func TestDownloadModelFailure(t *testing.T) {
	svc := newTestService(&fakeChatModel{err: assert.AnError}, &stubHistoryRepo{})

	_, err := svc.Download(context.Background(), &GenerateParams{StartupID: "startup-1"})

	require.Error(t, err)
	assert.Equal(t, errors.CodeGenerationFailed, errors.AsAppError(err).Code)
}
