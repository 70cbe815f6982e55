// Package service 定义跨层的领域服务契约
package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyPrompt   llmCtxKey = "llm_prompt"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

const unknownLabel = "unknown"

// WithPromptName 标记本次调用所属的提示词，用于指标与追踪
func WithPromptName(ctx context.Context, name string) context.Context {
	return withLabel(ctx, llmCtxKeyPrompt, name)
}

// WithProvider 标记本次调用使用的提供商
func WithProvider(ctx context.Context, provider string) context.Context {
	return withLabel(ctx, llmCtxKeyProvider, provider)
}

// PromptNameFromContext 读取提示词名称，缺省为 unknown
func PromptNameFromContext(ctx context.Context) string {
	return labelFromContext(ctx, llmCtxKeyPrompt)
}

// ProviderFromContext 读取提供商名称，缺省为 unknown
func ProviderFromContext(ctx context.Context) string {
	return labelFromContext(ctx, llmCtxKeyProvider)
}

func withLabel(ctx context.Context, key llmCtxKey, value string) context.Context {
	v := strings.TrimSpace(value)
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func labelFromContext(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknownLabel
	}
	s, ok := ctx.Value(key).(string)
	if !ok || s == "" {
		return unknownLabel
	}
	return s
}
