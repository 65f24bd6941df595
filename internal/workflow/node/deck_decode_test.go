package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "startupops-api/internal/workflow/model"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n{\"title\":\"Deck\"}\n```",
			want: `{"title":"Deck"}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"title\":\"Deck\"}\n```",
			want: `{"title":"Deck"}`,
		},
		{
			name: "no fence",
			in:   `{"title":"Deck"}`,
			want: `{"title":"Deck"}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```  \n",
			want: "{}",
		},
		{
			name: "opening fence only",
			in:   "```json\n{\"title\":\"Deck\"}",
			want: `{"title":"Deck"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestDecodeDeckDirectTier(t *testing.T) {
	fallback := FallbackDeck("Acme", "Fintech", "Payments for SMBs")

	deck, tier := DecodeDeck(`{"title":"Acme Pitch","slides":[{"title":"Problem","content":["SMB payments are slow"]}]}`, fallback)

	assert.Equal(t, TierDirect, tier)
	assert.Equal(t, "Acme Pitch", deck.Title)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, "Problem", deck.Slides[0].Title)
	assert.Equal(t, []string{"SMB payments are slow"}, deck.Slides[0].Content)
}

func TestDecodeDeckFencedOutputStillDirect(t *testing.T) {
	fallback := FallbackDeck("Acme", "", "")

	deck, tier := DecodeDeck("```json\n{\"title\":\"Acme Pitch\",\"slides\":[]}\n```", fallback)

	assert.Equal(t, TierDirect, tier)
	assert.Equal(t, "Acme Pitch", deck.Title)
	assert.Empty(t, deck.Slides)
}

func TestDecodeDeckRepairedTier(t *testing.T) {
	fallback := FallbackDeck("Acme", "Fintech", "")
	// content 数组的字符串里带裸换行，严格解析必然失败
	raw := "{\"title\":\"Acme Pitch\",\"slides\":[{\"title\":\"Traction\",\"content\":[\"10k users\nMRR $5k\"]}]}"

	deck, tier := DecodeDeck(raw, fallback)

	assert.Equal(t, TierRepaired, tier)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, []string{"10k users MRR $5k"}, deck.Slides[0].Content)
}

func TestDecodeDeckRepairOnlyTouchesContentArrays(t *testing.T) {
	fallback := FallbackDeck("Acme", "Fintech", "Payments")
	// 裸换行在 title 字符串里，修复层不处理，最终落入兜底
	raw := "{\"title\":\"Line1\nLine2\",\"slides\":[]}"

	deck, tier := DecodeDeck(raw, fallback)

	assert.Equal(t, TierFallback, tier)
	assert.Equal(t, fallback, deck)
}

func TestDecodeDeckFallbackTier(t *testing.T) {
	fallback := FallbackDeck("Acme", "Fintech", "Payments for SMBs")

	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain text", raw: "Sorry, I can not produce a deck right now."},
		{name: "truncated json", raw: `{"title":"Acme","slides":[{"title":"Pro`},
		{name: "empty output", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck, tier := DecodeDeck(tt.raw, fallback)
			assert.Equal(t, TierFallback, tier)
			assert.Equal(t, fallback, deck)
		})
	}
}

func TestParseDeckNormalizesDefaults(t *testing.T) {
	deck, err := ParseDeck(`{"slides":[{"content":["point"]},{"title":"Ask"}]}`)

	require.NoError(t, err)
	assert.Equal(t, "Pitch Deck", deck.Title)
	require.Len(t, deck.Slides, 2)
	assert.Equal(t, "Slide", deck.Slides[0].Title)
	assert.Equal(t, []string{"point"}, deck.Slides[0].Content)
	assert.Equal(t, "Ask", deck.Slides[1].Title)
	assert.NotNil(t, deck.Slides[1].Content)
	assert.Empty(t, deck.Slides[1].Content)
}

func TestNormalizeDeckPreservesSlideOrder(t *testing.T) {
	in := wfmodel.SlideDeck{
		Title: "Deck",
		Slides: []wfmodel.Slide{
			{Title: "One", Content: []string{"a"}},
			{Title: "Two", Content: []string{"b"}},
			{Title: "Three", Content: []string{"c"}},
		},
	}

	out := NormalizeDeck(in)

	require.Len(t, out.Slides, 3)
	assert.Equal(t, "One", out.Slides[0].Title)
	assert.Equal(t, "Two", out.Slides[1].Title)
	assert.Equal(t, "Three", out.Slides[2].Title)
}

func TestFallbackDeckStructure(t *testing.T) {
	deck := FallbackDeck("Acme", "Fintech", "Payments for SMBs")

	assert.Equal(t, "Pitch Deck", deck.Title)
	require.Len(t, deck.Slides, 5)
	assert.Equal(t, "Title Slide", deck.Slides[0].Title)
	assert.Equal(t, []string{"Acme", "Fintech", "Your Company"}, deck.Slides[0].Content)
	assert.Equal(t, "Problem", deck.Slides[1].Title)
	assert.Equal(t, []string{"Payments for SMBs", "Key market need"}, deck.Slides[1].Content)
	assert.Equal(t, "Solution", deck.Slides[2].Title)
	assert.Equal(t, "Market Opportunity", deck.Slides[3].Title)
	assert.Equal(t, []string{"Large Fintech opportunity", "Growth potential"}, deck.Slides[3].Content)
	assert.Equal(t, "The Ask", deck.Slides[4].Title)
	assert.Equal(t, []string{"Seeking investment", "To accelerate growth"}, deck.Slides[4].Content)
}

func TestFallbackDeckEmptyMetadata(t *testing.T) {
	deck := FallbackDeck("", "", "")

	require.Len(t, deck.Slides, 5)
	assert.Equal(t, []string{"Startup", "Tech", "Your Company"}, deck.Slides[0].Content)
	assert.Equal(t, []string{"Solving a market problem", "Key market need"}, deck.Slides[1].Content)
	assert.Equal(t, []string{"Large market opportunity", "Growth potential"}, deck.Slides[3].Content)
}
