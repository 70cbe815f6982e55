package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"task-prompt-api/internal/config"
	"task-prompt-api/internal/domain/service"
	apperrors "task-prompt-api/pkg/errors"
)

func TestCleanResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "```markdown\n# Plan\n1. Do it\n```", "# Plan\n1. Do it"},
		{"fenced with padding", "```markdown\n\n  body  \n\n```", "body"},
		{"plain", "just text", "just text"},
		{"prefix only", "```markdown\nno closing", "```markdown\nno closing"},
		{"suffix only", "text```", "text```"},
		{"other language", "```json\n{}\n```", "```json\n{}\n```"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanResponse(tc.in); got != tc.want {
				t.Fatalf("CleanResponse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

type fakeChatModel struct {
	reply    *schema.Message
	err      error
	input    []*schema.Message
	provider string
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.input = input
	m.provider = service.ProviderFromContext(ctx)
	return m.reply, m.err
}

func (m *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

type fakeProvider struct {
	model model.BaseChatModel
	err   error
}

func (p *fakeProvider) DefaultProvider() string { return "anthropic" }

func (p *fakeProvider) Default(context.Context) (model.BaseChatModel, error) {
	return p.model, p.err
}

func TestGenerateSendsSingleUserMessage(t *testing.T) {
	m := &fakeChatModel{reply: schema.AssistantMessage("```markdown\nstep one\n```", nil)}
	c := NewClient(&fakeProvider{model: m})

	got, err := c.Generate(context.Background(), "plan: write report")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "step one" {
		t.Fatalf("result = %q", got)
	}
	if len(m.input) != 1 || m.input[0].Role != schema.User || m.input[0].Content != "plan: write report" {
		t.Fatalf("unexpected input: %+v", m.input)
	}
	if m.provider != "anthropic" {
		t.Fatalf("provider label = %q", m.provider)
	}
}

func TestGenerateWrapsProviderError(t *testing.T) {
	cause := errors.New("503 overloaded")
	c := NewClient(&fakeProvider{model: &fakeChatModel{err: cause}})

	_, err := c.Generate(context.Background(), "x")
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeLLMCallFailed || appErr.HTTPStatus != http.StatusBadGateway {
		t.Fatalf("unexpected app error: %+v", appErr)
	}
}

func TestGenerateWrapsFactoryError(t *testing.T) {
	c := NewClient(&fakeProvider{err: errors.New("no api key")})
	if _, err := c.Generate(context.Background(), "x"); apperrors.AsAppError(err).Code != apperrors.CodeLLMCallFailed {
		t.Fatalf("err = %v", err)
	}
}

func TestChatModelConfig(t *testing.T) {
	cfg := chatModelConfig(config.ProviderConfig{Model: "claude-3-sonnet-20240229", MaxTokens: 1000})
	if cfg.MaxTokens == nil || *cfg.MaxTokens != 1000 {
		t.Fatalf("max tokens not set")
	}
	if cfg.Temperature != nil {
		t.Fatalf("temperature should stay unset when zero")
	}
}

func TestEinoFactoryUnknownProvider(t *testing.T) {
	f := NewEinoFactory(&config.Config{LLM: config.LLMConfig{DefaultProvider: "missing"}})
	if _, err := f.Default(context.Background()); err == nil {
		t.Fatalf("expected error for unconfigured provider")
	}
}
