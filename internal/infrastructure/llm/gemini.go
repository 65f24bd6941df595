// Package llm 提供 Eino ChatModel 的 Provider 实现与工厂
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"startupops-api/internal/config"
	"startupops-api/pkg/errors"
	"startupops-api/pkg/logger"
)

var tracer = otel.Tracer("llm")

// GeminiChatModel 通过 generateContent REST API 实现 Eino ChatModel
// 参考语料中没有官方 Go SDK, 直接对协议编程
type GeminiChatModel struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float32
	httpClient  *http.Client
}

// NewGeminiChatModel 创建 Gemini ChatModel
func NewGeminiChatModel(cfg *config.ProviderConfig) *GeminiChatModel {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GeminiChatModel{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// generateContent 请求与响应结构
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate    `json:"candidates"`
	UsageMetadata *geminiUsageMetadata `json:"usageMetadata"`
	Error         *geminiAPIError      `json:"error"`
}

// GetType 返回组件类型名
func (g *GeminiChatModel) GetType() string {
	return "Gemini"
}

// IsCallbacksEnabled 组件自行上报回调
func (g *GeminiChatModel) IsCallbacksEnabled() bool {
	return true
}

// Generate 调用 generateContent 生成一条回复
func (g *GeminiChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (outMsg *schema.Message, err error) {
	options := model.GetCommonOptions(&model.Options{
		Model:       &g.model,
		MaxTokens:   &g.maxTokens,
		Temperature: &g.temperature,
	}, opts...)

	reqConf := &model.Config{
		Model:       *options.Model,
		MaxTokens:   *options.MaxTokens,
		Temperature: *options.Temperature,
	}

	ctx = callbacks.EnsureRunInfo(ctx, g.GetType(), components.ComponentOfChatModel)
	ctx = callbacks.OnStart(ctx, &model.CallbackInput{
		Messages: input,
		Config:   reqConf,
	})
	defer func() {
		if err != nil {
			callbacks.OnError(ctx, err)
		}
	}()

	ctx, span := tracer.Start(ctx, "gemini.GenerateContent",
		trace.WithAttributes(attribute.String("llm.model", reqConf.Model)))
	defer span.End()

	body, err := g.buildRequest(input, reqConf)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, reqConf.Model)
	logger.Debug(ctx, "calling gemini generateContent",
		"model", reqConf.Model,
		"messages", len(input),
		"body_bytes", len(body),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrLLMProviderError.WithError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrLLMProviderError.WithError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("llm.status_code", resp.StatusCode))

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		span.RecordError(err)
		return nil, errors.ErrLLMProviderError.WithError(err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("gemini returned status %d", resp.StatusCode)
		if gr.Error != nil && gr.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", msg, gr.Error.Message)
		}
		err = errors.ErrLLMProviderError.WithDetail(msg)
		span.RecordError(err)
		return nil, err
	}

	if len(gr.Candidates) == 0 {
		err = errors.ErrLLMProviderError.WithDetail("no candidates in gemini response")
		span.RecordError(err)
		return nil, err
	}

	var sb strings.Builder
	for _, part := range gr.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	outMsg = &schema.Message{
		Role:    schema.Assistant,
		Content: sb.String(),
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: gr.Candidates[0].FinishReason,
		},
	}

	cbOut := &model.CallbackOutput{
		Message: outMsg,
		Config:  reqConf,
	}
	if gr.UsageMetadata != nil {
		usage := &model.TokenUsage{
			PromptTokens:     gr.UsageMetadata.PromptTokenCount,
			CompletionTokens: gr.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      gr.UsageMetadata.TotalTokenCount,
		}
		cbOut.TokenUsage = usage
		outMsg.ResponseMeta.Usage = &schema.TokenUsage{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		}
		span.SetAttributes(
			attribute.Int("llm.prompt_tokens", usage.PromptTokens),
			attribute.Int("llm.completion_tokens", usage.CompletionTokens),
		)
	}

	callbacks.OnEnd(ctx, cbOut)
	return outMsg, nil
}

// Stream 以单帧流的形式返回 Generate 的结果
// generateContent 是一次性接口, 流式语义由上层消费
func (g *GeminiChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := g.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// buildRequest 将 Eino 消息序列转换为 generateContent 请求体
// system 消息聚合进 system_instruction, assistant 映射为 model 角色
func (g *GeminiChatModel) buildRequest(input []*schema.Message, conf *model.Config) ([]byte, error) {
	var systemParts []geminiPart
	var contents []geminiContent

	for _, msg := range input {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.System:
			systemParts = append(systemParts, geminiPart{Text: msg.Content})
		case schema.Assistant:
			contents = append(contents, geminiContent{
				Role:  "model",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		default:
			contents = append(contents, geminiContent{
				Role:  "user",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		}
	}

	if len(contents) == 0 {
		return nil, errors.ErrLLMProviderError.WithDetail("no user content in request")
	}

	req := geminiRequest{Contents: contents}
	if len(systemParts) > 0 {
		req.SystemInstruction = &geminiContent{Parts: systemParts}
	}

	genCfg := &geminiGenerationConfig{}
	if conf.Temperature > 0 {
		t := conf.Temperature
		genCfg.Temperature = &t
	}
	if conf.MaxTokens > 0 {
		genCfg.MaxOutputTokens = conf.MaxTokens
	}
	if genCfg.Temperature != nil || genCfg.MaxOutputTokens > 0 {
		req.GenerationConfig = genCfg
	}

	return json.Marshal(req)
}
