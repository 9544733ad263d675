package handler

import "encoding/json"

// Message is one WebSocket frame. Inbound frames name a request port and
// carry the [countryCode, number] pair; outbound frames name a result port.
// ID is echoed back so the UI can match replies to requests.
type Message struct {
	ID      string          `json:"id,omitempty"`
	Port    string          `json:"port"`
	Payload json.RawMessage `json:"payload"`
}
