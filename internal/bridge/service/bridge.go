// Package service connects the UI ports to the phone formatter. It listens on
// request-format and request-validate and answers on format-result and
// validate-result of the same bus.
package service

import (
	"context"

	"phone_printer/internal/events"
)

// Formatter is what the bridge dispatches to.
type Formatter interface {
	FormatIncremental(ctx context.Context, number, countryCode string) string
	FormatIfValid(ctx context.Context, number, countryCode string) (string, bool)
}

// Bridge answers port requests. It holds no per-request state.
type Bridge struct {
	formatter Formatter
	bus       events.Bus
}

// New creates a Bridge that publishes its replies on bus.
func New(formatter Formatter, bus events.Bus) *Bridge {
	return &Bridge{formatter: formatter, bus: bus}
}

// RegisterHandlers subscribes the bridge to the inbound ports.
func (b *Bridge) RegisterHandlers() {
	b.bus.Subscribe(events.PortRequestFormat, b)
	b.bus.Subscribe(events.PortRequestValidate, b)
}

// Handle routes events to the appropriate handler method.
func (b *Bridge) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.FormatRequested:
		return b.handleFormat(ctx, e)
	case events.ValidateRequested:
		return b.handleValidate(ctx, e)
	default:
		return nil
	}
}

// A malformed pair formats as the empty string.
func (b *Bridge) handleFormat(ctx context.Context, e events.FormatRequested) error {
	var result string
	if in, ok := DecodePhoneInput(e.Payload); ok {
		result = b.formatter.FormatIncremental(ctx, in.Number, in.CountryCode)
	}

	return b.bus.PublishSync(ctx, events.FormatResult{
		BaseEvent: events.NewBaseEvent(),
		RequestID: e.RequestID,
		Result:    result,
	})
}

// A malformed pair or an invalid number both answer null.
func (b *Bridge) handleValidate(ctx context.Context, e events.ValidateRequested) error {
	var result *string
	if in, ok := DecodePhoneInput(e.Payload); ok {
		if normalized, valid := b.formatter.FormatIfValid(ctx, in.Number, in.CountryCode); valid {
			result = &normalized
		}
	}

	return b.bus.PublishSync(ctx, events.ValidateResult{
		BaseEvent: events.NewBaseEvent(),
		RequestID: e.RequestID,
		Result:    result,
	})
}

var _ events.Handler = (*Bridge)(nil)
