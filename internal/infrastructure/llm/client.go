// Package llm 提供基于 Eino 的文本生成客户端
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"task-prompt-api/internal/domain/service"
	apperrors "task-prompt-api/pkg/errors"
)

const markdownFence = "```markdown\n"

// ChatModelProvider 提供默认 ChatModel
type ChatModelProvider interface {
	DefaultProvider() string
	Default(ctx context.Context) (model.BaseChatModel, error)
}

// Client 文本生成客户端，实现 service.TextGenerator
type Client struct {
	models ChatModelProvider
}

// NewClient 创建文本生成客户端
func NewClient(models ChatModelProvider) *Client {
	return &Client{models: models}
}

// Generate 以单条用户消息调用模型，不做重试
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx = service.WithProvider(ctx, c.models.DefaultProvider())

	chatModel, err := c.models.Default(ctx)
	if err != nil {
		return "", apperrors.ErrLLMCallFailed.WithError(err)
	}

	msg, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", apperrors.ErrLLMCallFailed.WithError(err)
	}
	if msg == nil {
		return "", apperrors.ErrLLMCallFailed.WithError(errors.New("empty response"))
	}

	return CleanResponse(msg.Content), nil
}

// CleanResponse 去掉包裹整段输出的 markdown 代码围栏
// 只有同时以 "```markdown\n" 开头且以 "```" 结尾时才处理，其余原样返回
func CleanResponse(raw string) string {
	if !strings.HasPrefix(raw, markdownFence) || !strings.HasSuffix(raw, "```") {
		return raw
	}
	if len(raw) < len(markdownFence)+3 {
		return raw
	}
	inner := raw[len(markdownFence) : len(raw)-3]
	return strings.TrimSpace(inner)
}
