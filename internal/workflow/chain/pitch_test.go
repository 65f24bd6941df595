package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "startupops-api/internal/workflow/model"
	wfnode "startupops-api/internal/workflow/node"
)

func pitchInput() *wfmodel.PitchGenerateInput {
	return &wfmodel.PitchGenerateInput{
		StartupName:        "Acme",
		Industry:           "Fintech",
		Stage:              "mvp",
		Description:        "Payments for SMBs",
		TeamSize:           4,
		TaskTotal:          10,
		TaskDone:           4,
		MilestoneTotal:     5,
		MilestoneCompleted: 2,
		FeedbackCount:      7,
		FeedbackAvgRating:  4.26,
	}
}

func TestPitchChainDirectDecode(t *testing.T) {
	chatModel := &fakeChatModel{reply: "```json\n{\"title\":\"Acme Pitch\",\"slides\":[{\"title\":\"Problem\",\"content\":[\"SMB payments are slow\"]}]}\n```"}
	chain := NewPitchChain(&fakeFactory{chatModel: chatModel})

	out, err := chain.Invoke(context.Background(), pitchInput())

	require.NoError(t, err)
	assert.Equal(t, string(wfnode.TierDirect), out.Tier)
	assert.Equal(t, "Acme Pitch", out.Deck.Title)
	require.Len(t, out.Deck.Slides, 1)
	assert.Equal(t, "Problem", out.Deck.Slides[0].Title)
	// Raw 为剥离围栏后的原文
	assert.Equal(t, `{"title":"Acme Pitch","slides":[{"title":"Problem","content":["SMB payments are slow"]}]}`, out.Raw)
}

func TestPitchChainFallbackDecode(t *testing.T) {
	chatModel := &fakeChatModel{reply: "Sorry, I can only answer questions about cooking."}
	chain := NewPitchChain(&fakeFactory{chatModel: chatModel})

	out, err := chain.Invoke(context.Background(), pitchInput())

	require.NoError(t, err)
	assert.Equal(t, string(wfnode.TierFallback), out.Tier)
	assert.Equal(t, wfnode.FallbackDeck("Acme", "Fintech", "Payments for SMBs"), out.Deck)
	assert.Len(t, out.Deck.Slides, 5)
}

func TestPitchChainRepairedDecode(t *testing.T) {
	// content 数组内的裸换行使严格解析失败, 修复层替换为空格后成功
	chatModel := &fakeChatModel{reply: "{\"title\":\"Acme Pitch\",\"slides\":[{\"title\":\"Traction\",\"content\":[\"10k users\nMRR $5k\"]}]}"}
	chain := NewPitchChain(&fakeFactory{chatModel: chatModel})

	out, err := chain.Invoke(context.Background(), pitchInput())

	require.NoError(t, err)
	assert.Equal(t, string(wfnode.TierRepaired), out.Tier)
	require.Len(t, out.Deck.Slides, 1)
	assert.Equal(t, []string{"10k users MRR $5k"}, out.Deck.Slides[0].Content)
}

func TestPitchChainTemplateRendering(t *testing.T) {
	chatModel := &fakeChatModel{reply: `{"title":"Deck","slides":[]}`}
	chain := NewPitchChain(&fakeFactory{chatModel: chatModel})

	_, err := chain.Invoke(context.Background(), pitchInput())

	require.NoError(t, err)
	require.Len(t, chatModel.received, 2)
	assert.Contains(t, chatModel.received[0].Content, "ONLY valid JSON")
	user := chatModel.received[1].Content
	assert.Contains(t, user, "Company: Acme")
	assert.Contains(t, user, "Industry: Fintech")
	assert.Contains(t, user, "Description: Payments for SMBs")
	assert.Contains(t, user, "Traction: Team 4, Tasks 4/10, Milestones 2/5, Rating 4.3/5")
}

func TestPitchChainCustomPrompt(t *testing.T) {
	chatModel := &fakeChatModel{reply: `{"title":"Deck","slides":[]}`}
	chain := NewPitchChain(&fakeFactory{chatModel: chatModel})

	in := pitchInput()
	in.CustomPrompt = "emphasize the enterprise segment"
	_, err := chain.Invoke(context.Background(), in)

	require.NoError(t, err)
	user := chatModel.received[1].Content
	assert.Contains(t, user, "Additional context from user: emphasize the enterprise segment")
	assert.Contains(t, user, "Please incorporate this context into the pitch generation.")
}

func TestPitchChainFactoryError(t *testing.T) {
	chain := NewPitchChain(&fakeFactory{err: assert.AnError})

	_, err := chain.Invoke(context.Background(), pitchInput())

	assert.ErrorIs(t, err, assert.AnError)
}
