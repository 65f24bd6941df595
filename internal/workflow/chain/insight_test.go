package chain

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "startupops-api/internal/workflow/model"
	workflowprompt "startupops-api/internal/workflow/prompt"
)

// fakeChatModel 记录收到的消息并返回固定回复
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
	chatModel     model.BaseChatModel
	err           error
	requestedName string
}

func (f *fakeFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	f.requestedName = name
	if f.err != nil {
		return nil, f.err
	}
	return f.chatModel, nil
}

func TestInsightChainInvoke(t *testing.T) {
	chatModel := &fakeChatModel{reply: "1. Ship the MVP.\n2. Talk to users."}
	chain := NewInsightChain(&fakeFactory{chatModel: chatModel})

	msg, err := chain.Invoke(context.Background(), &wfmodel.InsightGenerateInput{
		Kind:           wfmodel.InsightKindGeneral,
		StartupName:    "Acme",
		Industry:       "Fintech",
		Stage:          "mvp",
		TaskTotal:      10,
		TaskDone:       4,
		TaskInProgress: 3,
		MilestoneTotal: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, "1. Ship the MVP.\n2. Talk to users.", msg.Content)

	require.Len(t, chatModel.received, 2)
	assert.Equal(t, schema.System, chatModel.received[0].Role)
	assert.Contains(t, chatModel.received[0].Content, "startup advisor")
	assert.Equal(t, schema.User, chatModel.received[1].Role)
	assert.Contains(t, chatModel.received[1].Content, "Startup: Acme (Fintech - mvp stage)")
	assert.Contains(t, chatModel.received[1].Content, "Total tasks: 10, Done: 4, In Progress: 3")
}

func TestInsightChainFallbackMetadata(t *testing.T) {
	chatModel := &fakeChatModel{reply: "ok"}
	chain := NewInsightChain(&fakeFactory{chatModel: chatModel})

	_, err := chain.Invoke(context.Background(), &wfmodel.InsightGenerateInput{})

	require.NoError(t, err)
	require.Len(t, chatModel.received, 2)
	// 缺失的项目元数据使用模板兜底值
	assert.Contains(t, chatModel.received[1].Content, "Startup: Unknown (Unknown - idea stage)")
}

func TestInsightChainCustomPrompt(t *testing.T) {
	chatModel := &fakeChatModel{reply: "ok"}
	chain := NewInsightChain(&fakeFactory{chatModel: chatModel})

	_, err := chain.Invoke(context.Background(), &wfmodel.InsightGenerateInput{
		CustomPrompt: "focus on churn",
	})

	require.NoError(t, err)
	assert.Contains(t, chatModel.received[1].Content, "Additional context from user: focus on churn")
}

func TestInsightChainProviderSelection(t *testing.T) {
	factory := &fakeFactory{chatModel: &fakeChatModel{reply: "ok"}}
	chain := NewInsightChain(factory)

	_, err := chain.Invoke(context.Background(), &wfmodel.InsightGenerateInput{Provider: " openai "})

	require.NoError(t, err)
	assert.Equal(t, "openai", factory.requestedName)
}

func TestInsightChainModelError(t *testing.T) {
	chain := NewInsightChain(&fakeFactory{chatModel: &fakeChatModel{err: assert.AnError}})

	_, err := chain.Invoke(context.Background(), &wfmodel.InsightGenerateInput{})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestInsightChainNilInput(t *testing.T) {
	chain := NewInsightChain(&fakeFactory{chatModel: &fakeChatModel{reply: "ok"}})

	_, err := chain.Invoke(context.Background(), nil)

	assert.Error(t, err)
}

func TestPromptIDForKind(t *testing.T) {
	tests := []struct {
		kind wfmodel.InsightKind
		want workflowprompt.PromptID
	}{
		{kind: wfmodel.InsightKindTasks, want: workflowprompt.PromptInsightTasksV1},
		{kind: wfmodel.InsightKindMilestones, want: workflowprompt.PromptInsightMilestonesV1},
		{kind: wfmodel.InsightKindGrowth, want: workflowprompt.PromptInsightGrowthV1},
		{kind: wfmodel.InsightKindGeneral, want: workflowprompt.PromptInsightGeneralV1},
		// 未知类别回退到 general
		{kind: wfmodel.InsightKind("roadmap"), want: workflowprompt.PromptInsightGeneralV1},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, promptIDForKind(tt.kind))
		})
	}
}
