package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"phone_printer/platform/logger"
)

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), logger.Nop(), "op", 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryReturnsLastError(t *testing.T) {
	err := withRetry(context.Background(), logger.Nop(), "op", 2, time.Millisecond, func() error {
		return errors.New("still down")
	})
	if err == nil || err.Error() != "op: still down" {
		t.Fatalf("expected wrapped last error, got %v", err)
	}
}

func TestWithRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := withRetry(ctx, logger.Nop(), "op", 3, time.Millisecond, func() error {
		t.Fatalf("fn must not run with a cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
