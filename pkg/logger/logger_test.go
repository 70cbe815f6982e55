package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "json")
	t.Cleanup(func() { Init("info", "json") })

	ctx := WithContext(context.Background(), RequestIDKey, "req-1")
	ctx = WithContext(ctx, UserIDKey, "user-1")
	Info(ctx, "task created", "task_id", "t-1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if line["request_id"] != "req-1" || line["user_id"] != "user-1" || line["task_id"] != "t-1" {
		t.Fatalf("missing context fields: %v", line)
	}
	if line["msg"] != "task created" {
		t.Fatalf("msg = %v", line["msg"])
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("WARNING").String() != "WARN" {
		t.Fatalf("warning should map to WARN")
	}
	if parseLevel("nonsense").String() != "INFO" {
		t.Fatalf("unknown level should default to INFO")
	}
}
