// Package service 提供跨层共享的领域服务契约
package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

// 生成工作流名称, 随 Context 传递给 LLM 回调
const (
	WorkflowInsightGenerate = "insight_generate"
	WorkflowPitchGenerate   = "pitch_generate"
)

// unknownLabel 未标记时回调侧使用的占位标签
const unknownLabel = "unknown"

func withLLMValue(ctx context.Context, key llmCtxKey, val string) context.Context {
	if ctx == nil {
		return nil
	}
	v := strings.TrimSpace(val)
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func llmValueFromContext(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknownLabel
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return unknownLabel
	}
	return strings.TrimSpace(s)
}

// WithWorkflow 在 Context 中标记当前生成工作流
func WithWorkflow(ctx context.Context, workflow string) context.Context {
	return withLLMValue(ctx, llmCtxKeyWorkflow, workflow)
}

// WithProvider 在 Context 中标记当前 LLM 提供商
func WithProvider(ctx context.Context, provider string) context.Context {
	return withLLMValue(ctx, llmCtxKeyProvider, provider)
}

// WithWorkflowProvider 同时标记工作流与提供商
func WithWorkflowProvider(ctx context.Context, workflow, provider string) context.Context {
	return WithProvider(WithWorkflow(ctx, workflow), provider)
}

// WorkflowFromContext 读取 Context 中的工作流名称
func WorkflowFromContext(ctx context.Context) string {
	return llmValueFromContext(ctx, llmCtxKeyWorkflow)
}

// ProviderFromContext 读取 Context 中的提供商名称
func ProviderFromContext(ctx context.Context) string {
	return llmValueFromContext(ctx, llmCtxKeyProvider)
}
