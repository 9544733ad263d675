// Package events defines the port messages exchanged between the embedded UI
// and the phone bridge. Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"encoding/json"

	"phone_printer/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// Port names. Inbound ports carry a [countryCode, number] pair; outbound
// ports carry the result.
const (
	PortRequestFormat   = "request-format"
	PortFormatResult    = "format-result"
	PortRequestValidate = "request-validate"
	PortValidateResult  = "validate-result"
)

// =============================================================================
// Inbound
// =============================================================================

// FormatRequested asks for as-you-type formatting of a number.
type FormatRequested struct {
	BaseEvent
	RequestID string          `json:"requestId"`
	Payload   json.RawMessage `json:"payload"`
}

func (e FormatRequested) EventName() string { return PortRequestFormat }

// ValidateRequested asks for validation and E.164 normalization of a number.
type ValidateRequested struct {
	BaseEvent
	RequestID string          `json:"requestId"`
	Payload   json.RawMessage `json:"payload"`
}

func (e ValidateRequested) EventName() string { return PortRequestValidate }

// =============================================================================
// Outbound
// =============================================================================

// FormatResult carries the progressively formatted number.
type FormatResult struct {
	BaseEvent
	RequestID string `json:"requestId"`
	Result    string `json:"result"`
}

func (e FormatResult) EventName() string { return PortFormatResult }

// ValidateResult carries the E.164 number, or nil when the input is not valid.
type ValidateResult struct {
	BaseEvent
	RequestID string  `json:"requestId"`
	Result    *string `json:"result"`
}

func (e ValidateResult) EventName() string { return PortValidateResult }
