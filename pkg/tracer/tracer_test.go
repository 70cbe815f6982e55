package tracer

import (
	"context"
	"testing"
)

func TestInitDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "test", Enabled: false})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	ctx, span := Start(context.Background(), "test.span")
	defer span.End()
	if TraceID(ctx) != "" {
		t.Fatalf("noop tracer should not produce a valid trace id")
	}
}

func TestSamplerFor(t *testing.T) {
	if got := samplerFor(1).Description(); got != "AlwaysOnSampler" {
		t.Fatalf("rate 1 sampler = %s", got)
	}
	if got := samplerFor(0).Description(); got != "AlwaysOffSampler" {
		t.Fatalf("rate 0 sampler = %s", got)
	}
}
