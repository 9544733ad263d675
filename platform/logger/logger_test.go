package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithContextAddsRequestAndSession(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, SessionIDKey, "sess-1")
	log.WithContext(ctx).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "req-1" || entry["session_id"] != "sess-1" {
		t.Fatalf("expected request and session ids, got %v", entry)
	}
}

func TestDevelopmentLoggerIsTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("development", &buf)
	log.Debug("visible")

	if !bytes.Contains(buf.Bytes(), []byte("msg=visible")) {
		t.Fatalf("expected debug text output, got %q", buf.String())
	}
}
