package eino

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

func TestElapsedSeconds(t *testing.T) {
	if got := elapsedSeconds(context.Background()); got != 0 {
		t.Fatalf("elapsed without start = %v", got)
	}
	ctx := context.WithValue(context.Background(), startTimeKey{}, time.Now().Add(-time.Second))
	if got := elapsedSeconds(ctx); got < 1 {
		t.Fatalf("elapsed = %v, want >= 1", got)
	}
}

func TestModelNameHelpers(t *testing.T) {
	if modelNameFromInput(nil) != "" || modelNameFromOutput(nil) != "" {
		t.Fatalf("nil callbacks should yield empty model name")
	}
	in := &model.CallbackInput{Config: &model.Config{Model: "claude-3-sonnet-20240229"}}
	if got := modelNameFromInput(in); got != "claude-3-sonnet-20240229" {
		t.Fatalf("model = %q", got)
	}
}

func TestCallbackHandlerLifecycle(t *testing.T) {
	h := newChatModelCallbackHandler()
	ctx := h.OnStart(context.Background(), nil, &model.CallbackInput{
		Messages: []*schema.Message{schema.UserMessage("hi")},
		Config:   &model.Config{Model: "m"},
	})
	if modelNameFromContext(ctx) != "m" {
		t.Fatalf("model name not stored on start")
	}
	ctx = h.OnEnd(ctx, nil, &model.CallbackOutput{
		Message:    schema.AssistantMessage("ok", nil),
		TokenUsage: &model.TokenUsage{PromptTokens: 3, CompletionTokens: 5},
	})

	errCtx := h.OnStart(context.Background(), nil, nil)
	h.OnError(errCtx, nil, errors.New("boom"))
	_ = ctx
}
