package handler

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"phone_printer/internal/bridge/service"
	"phone_printer/internal/events"
	"phone_printer/platform/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// session is one connected UI instance with its own ports.
type session struct {
	conn *websocket.Conn
	bus  *events.InMemoryBus
	log  *logger.Logger

	// writeMu serializes replies and keepalive pings.
	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn, formatter service.Formatter, log *logger.Logger) *session {
	s := &session{
		conn: conn,
		bus:  events.NewInMemoryBus(log),
		log:  log,
	}

	service.New(formatter, s.bus).RegisterHandlers()
	s.bus.Subscribe(events.PortFormatResult, events.HandlerFunc(s.reply))
	s.bus.Subscribe(events.PortValidateResult, events.HandlerFunc(s.reply))
	return s
}

// run reads frames until the connection closes. Frames are handled one at a
// time on this goroutine.
func (s *session) run(ctx context.Context) {
	done := make(chan struct{})
	defer func() {
		close(done)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go s.keepalive(done)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("bridge connection closed unexpectedly", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Debug("bridge frame skipped", "reason", "invalid json")
			continue
		}
		if err := s.dispatch(ctx, msg); err != nil {
			s.log.Warn("bridge reply failed", "port", msg.Port, "error", err)
			return
		}
	}
}

func (s *session) dispatch(ctx context.Context, msg Message) error {
	switch msg.Port {
	case events.PortRequestFormat:
		return s.bus.PublishSync(ctx, events.FormatRequested{
			BaseEvent: events.NewBaseEvent(),
			RequestID: msg.ID,
			Payload:   msg.Payload,
		})
	case events.PortRequestValidate:
		return s.bus.PublishSync(ctx, events.ValidateRequested{
			BaseEvent: events.NewBaseEvent(),
			RequestID: msg.ID,
			Payload:   msg.Payload,
		})
	default:
		s.log.Debug("bridge frame skipped", "reason", "unknown port", "port", msg.Port)
		return nil
	}
}

func (s *session) reply(_ context.Context, event events.Event) error {
	var (
		id      string
		payload any
	)
	switch e := event.(type) {
	case events.FormatResult:
		id, payload = e.RequestID, e.Result
	case events.ValidateResult:
		id, payload = e.RequestID, e.Result
	default:
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.write(Message{ID: id, Port: event.EventName(), Payload: raw})
}

func (s *session) write(msg Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

func (s *session) keepalive(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
