package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"phone_printer/platform/logger"
)

type pingEvent struct {
	BaseEvent
}

func (pingEvent) EventName() string { return "ping" }

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())

	var order []int
	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error {
		order = append(order, 1)
		return nil
	}))
	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error {
		order = append(order, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("PublishSync returned error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected handlers to run in order [1 2], got %v", order)
	}
}

func TestPublishSyncJoinsErrorsAndRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	boom := errors.New("boom")

	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error { return boom }))
	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error { panic("bad handler") }))

	err := bus.PublishSync(context.Background(), pingEvent{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
}

func TestPublishRunsAsynchronously(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())

	var calls atomic.Int32
	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error {
		calls.Add(1)
		return nil
	}))

	bus.Publish(context.Background(), pingEvent{})
	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()

	if calls.Load() != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls.Load())
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(nil)
	if err := bus.PublishSync(context.Background(), pingEvent{}); err != nil {
		t.Fatalf("expected no error without subscribers, got %v", err)
	}
}
