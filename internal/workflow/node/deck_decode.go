package node

import (
	"encoding/json"
	"regexp"
	"strings"

	wfmodel "startupops-api/internal/workflow/model"
	"startupops-api/pkg/metrics"
)

// DecodeTier 标识解码命中的层级
type DecodeTier string

const (
	TierDirect   DecodeTier = "direct"
	TierRepaired DecodeTier = "repaired"
	TierFallback DecodeTier = "fallback"
)

// StripCodeFence 剥离模型输出外层的 Markdown 代码块围栏
func StripCodeFence(s string) string {
	text := strings.TrimSpace(s)
	if strings.HasPrefix(text, "```json") {
		text = text[7:]
	}
	if strings.HasPrefix(text, "```") {
		text = text[3:]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-3]
	}
	return strings.TrimSpace(text)
}

var contentArrayRe = regexp.MustCompile(`"content":\s*\[[^\]]*\]`)

// RepairContentArrays 修复 content 数组内部的裸换行：逐个匹配数组片段，
// 将其中的 \n 与 \r 替换为空格后再整体重新解析
func RepairContentArrays(s string) string {
	return contentArrayRe.ReplaceAllStringFunc(s, func(m string) string {
		m = strings.ReplaceAll(m, "\n", " ")
		return strings.ReplaceAll(m, "\r", " ")
	})
}

// ParseDeck 严格解析 JSON 文稿；字段类型不符即失败，缺失字段由 NormalizeDeck 补齐
func ParseDeck(text string) (wfmodel.SlideDeck, error) {
	var deck wfmodel.SlideDeck
	if err := json.Unmarshal([]byte(text), &deck); err != nil {
		return wfmodel.SlideDeck{}, err
	}
	return NormalizeDeck(deck), nil
}

// NormalizeDeck 补齐缺省字段：空标题取默认值，nil 切片归一为空切片。
// 幻灯片顺序保持不变，空文稿原样通过。
func NormalizeDeck(deck wfmodel.SlideDeck) wfmodel.SlideDeck {
	if deck.Title == "" {
		deck.Title = "Pitch Deck"
	}
	if deck.Slides == nil {
		deck.Slides = []wfmodel.Slide{}
	}
	for i := range deck.Slides {
		if deck.Slides[i].Title == "" {
			deck.Slides[i].Title = "Slide"
		}
		if deck.Slides[i].Content == nil {
			deck.Slides[i].Content = []string{}
		}
	}
	return deck
}

// FallbackDeck 由项目元数据构造兜底文稿，任何输入都能得到合法结果
func FallbackDeck(name, industry, description string) wfmodel.SlideDeck {
	return wfmodel.SlideDeck{
		Title: "Pitch Deck",
		Slides: []wfmodel.Slide{
			{Title: "Title Slide", Content: []string{Fallback(name, "Startup"), Fallback(industry, "Tech"), "Your Company"}},
			{Title: "Problem", Content: []string{Fallback(description, "Solving a market problem"), "Key market need"}},
			{Title: "Solution", Content: []string{"Our innovative solution", "Key features and benefits"}},
			{Title: "Market Opportunity", Content: []string{"Large " + Fallback(industry, "market") + " opportunity", "Growth potential"}},
			{Title: "The Ask", Content: []string{"Seeking investment", "To accelerate growth"}},
		},
	}
}

// DecodeDeck 按层级解码模型输出：剥离围栏后先直接解析，再尝试修复 content
// 数组中的裸换行，仍失败则使用兜底文稿。每次调用恰好命中一个层级并计入指标。
func DecodeDeck(raw string, fallback wfmodel.SlideDeck) (wfmodel.SlideDeck, DecodeTier) {
	text := StripCodeFence(raw)
	if deck, err := ParseDeck(text); err == nil {
		metrics.DecodeTierTotal.WithLabelValues(string(TierDirect)).Inc()
		return deck, TierDirect
	}
	if deck, err := ParseDeck(RepairContentArrays(text)); err == nil {
		metrics.DecodeTierTotal.WithLabelValues(string(TierRepaired)).Inc()
		return deck, TierRepaired
	}
	metrics.DecodeTierTotal.WithLabelValues(string(TierFallback)).Inc()
	return fallback, TierFallback
}
