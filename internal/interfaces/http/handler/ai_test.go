package handler

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startupops-api/internal/application/analytics"
	"startupops-api/internal/application/insight"
	"startupops-api/internal/application/pitch"
	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/internal/render/pptx"
	wfchain "startupops-api/internal/workflow/chain"
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

type stubHistoryRepo struct{ repository.HistoryRepository }

func (s *stubHistoryRepo) Create(ctx context.Context, record *entity.HistoryRecord) error {
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

type stubTeamRepo struct{ repository.MemberRepository }

func (s *stubTeamRepo) CountByStartup(ctx context.Context, startupID string) (int64, error) {
	return 3, nil
}

// newAIHandler 用假模型组装真实的生成服务, 覆盖从请求到链路调用的完整路径
func newAIHandler(chatModel *fakeChatModel, memberRepo *stubMemberRepo) *AIHandler {
	factory := &fakeFactory{chatModel: chatModel}
	analyticsService := analytics.NewService(&stubTaskRepo{}, &stubMilestoneRepo{}, &stubFeedbackRepo{}, &stubTeamRepo{})
	startupRepo := &stubStartupRepo{startup: &entity.Startup{
		ID:          "startup-1",
		Name:        "Acme Corp",
		Industry:    "Fintech",
		Stage:       entity.StartupStageMVP,
		Description: "Payments for SMBs",
	}}
	historyRepo := &stubHistoryRepo{}

	insightService := insight.NewService(wfchain.NewInsightChain(factory), startupRepo, analyticsService, historyRepo)
	pitchService := pitch.NewService(wfchain.NewPitchChain(factory), startupRepo, analyticsService, historyRepo, pptx.NewWriter())
	return NewAIHandler(insightService, pitchService, memberRepo)
}

func newAIRouter(h *AIHandler) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, "user-1")
	})
	ai := r.Group("/api/ai")
	ai.POST("/insights", h.Insights)
	ai.POST("/pitch", h.Pitch)
	ai.POST("/pitch/download", h.PitchDownload)
	return r
}

func TestInsightsEndpoint(t *testing.T) {
	h := newAIHandler(
		&fakeChatModel{reply: "Focus on retention and ship weekly."},
		&stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)},
	)

	w := doJSON(t, newAIRouter(h), http.MethodPost, "/api/ai/insights",
		`{"startup_id":"startup-1","prompt_type":"growth"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response[dto.InsightResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Focus on retention and ship weekly.", resp.Data.Insights)
	assert.Equal(t, "growth", resp.Data.PromptType)
}

func TestInsightsRejectsNonMember(t *testing.T) {
	h := newAIHandler(&fakeChatModel{reply: "ok"}, &stubMemberRepo{member: nil})

	w := doJSON(t, newAIRouter(h), http.MethodPost, "/api/ai/insights",
		`{"startup_id":"startup-1"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Not a member")
}

func TestInsightsRequiresStartupID(t *testing.T) {
	h := newAIHandler(&fakeChatModel{reply: "ok"}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)})

	w := doJSON(t, newAIRouter(h), http.MethodPost, "/api/ai/insights", `{"prompt_type":"growth"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestInsightsModelFailure(t *testing.T) {
	h := newAIHandler(&fakeChatModel{err: assert.AnError}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)})

	w := doJSON(t, newAIRouter(h), http.MethodPost, "/api/ai/insights",
		`{"startup_id":"startup-1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "AI service error")
}

func TestPitchEndpoint(t *testing.T) {
	h := newAIHandler(
		&fakeChatModel{reply: "```json\n{\"title\":\"Acme Pitch\",\"slides\":[{\"title\":\"Problem\",\"content\":[\"SMB payments are slow\"]},{\"title\":\"Solution\",\"content\":[\"One-click settlement\"]}]}\n```"},
		&stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)},
	)

	w := doJSON(t, newAIRouter(h), http.MethodPost, "/api/ai/pitch",
		`{"startup_id":"startup-1"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response[dto.PitchResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ppt", resp.Data.Format)
	assert.Equal(t, "Acme Corp", resp.Data.StartupName)
	require.Len(t, resp.Data.Slides, 2)
	assert.Equal(t, "Problem", resp.Data.Slides[0].Title)
	assert.JSONEq(t,
		`{"title":"Acme Pitch","slides":[{"title":"Problem","content":["SMB payments are slow"]},{"title":"Solution","content":["One-click settlement"]}]}`,
		resp.Data.Pitch)
}

func TestPitchDownloadEndpoint(t *testing.T) {
	h := newAIHandler(
		&fakeChatModel{reply: `{"title":"Acme Pitch","slides":[{"title":"Problem","content":["SMB payments are slow"]}]}`},
		&stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)},
	)

	w := doJSON(t, newAIRouter(h), http.MethodPost, "/api/ai/pitch/download",
		`{"startup_id":"startup-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=acme_corp_pitch.pptx", w.Header().Get("Content-Disposition"))
	assert.Equal(t, pptx.ContentType, w.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["ppt/presentation.xml"])
	assert.True(t, names["ppt/slides/slide1.xml"])
}

func TestPitchDownloadModelFailure(t *testing.T) {
	h := newAIHandler(&fakeChatModel{err: assert.AnError}, &stubMemberRepo{member: memberWithRole(entity.MemberRoleMember)})

	w := doJSON(t, newAIRouter(h), http.MethodPost, "/api/ai/pitch/download",
		`{"startup_id":"startup-1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "AI service error")
}
