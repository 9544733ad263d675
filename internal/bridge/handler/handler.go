package handler

import (
	"context"

	"phone_printer/internal/bridge/service"
	"phone_printer/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades UI connections and runs a bridge session on each.
type Handler struct {
	formatter service.Formatter
	log       *logger.Logger
	upgrader  websocket.Upgrader
}

// New creates a bridge handler. The upgrader keeps gorilla's same-origin check.
func New(formatter service.Formatter, log *logger.Logger) *Handler {
	return &Handler{
		formatter: formatter,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Serve handles GET /api/v1/bridge/ws.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.WithContext(c.Request.Context()).Debug("bridge upgrade rejected", "error", err)
		return
	}

	sessionID := uuid.NewString()
	ctx := context.WithValue(c.Request.Context(), logger.SessionIDKey, sessionID)
	log := h.log.WithContext(ctx)

	log.Info("bridge session opened")
	newSession(conn, h.formatter, log).run(ctx)
	log.Info("bridge session closed")
}
