package messaging

import "testing"

func TestNewMessageEncodesPayload(t *testing.T) {
	msg, err := NewMessage("task_prompt.applied", "user-1", map[string]any{"cost": 1})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if msg.ID == "" || msg.Type != "task_prompt.applied" || msg.UserID != "user-1" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	var payload struct {
		Cost int `json:"cost"`
	}
	if err := msg.UnmarshalPayload(&payload); err != nil || payload.Cost != 1 {
		t.Fatalf("payload round trip failed: %+v (%v)", payload, err)
	}

	msg.SetMetadata("request_id", "r-1")
	if msg.Metadata["request_id"] != "r-1" {
		t.Fatalf("metadata not set")
	}
}

func TestNewMessageRejectsUnencodablePayload(t *testing.T) {
	if _, err := NewMessage("x", "u", make(chan int)); err == nil {
		t.Fatalf("expected marshal error")
	}
}

func TestNewProducerDefaults(t *testing.T) {
	p := NewProducer(nil, "", 0)
	if p.stream != DefaultStream || p.maxLen != 100000 {
		t.Fatalf("defaults not applied: %+v", p)
	}
}
