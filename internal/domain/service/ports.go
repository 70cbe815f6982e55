package service

import (
	"context"
	"time"
)

// TextGenerator 文本生成端口，由 LLM 客户端实现
type TextGenerator interface {
	// Generate 以单条用户消息调用模型，返回清理后的文本
	Generate(ctx context.Context, prompt string) (string, error)
}

// 事件类型
const (
	EventTaskPromptApplied = "task_prompt.applied"
	EventCreditGranted     = "credit.granted"
)

// DomainEvent 提交后对外发布的领域事件
type DomainEvent struct {
	Type       string         `json:"type"`
	UserID     string         `json:"user_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// EventPublisher 事件发布端口，发布失败不影响主流程
type EventPublisher interface {
	Publish(ctx context.Context, event *DomainEvent) error
}

// NoopPublisher 不发布任何事件
type NoopPublisher struct{}

// Publish 实现 EventPublisher
func (NoopPublisher) Publish(context.Context, *DomainEvent) error { return nil }
