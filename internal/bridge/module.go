// Package bridge provides the UI bridge module: a WebSocket endpoint that
// carries the request/result ports between the embedded UI and the phone
// formatter.
package bridge

import (
	"phone_printer/internal/bridge/handler"
	"phone_printer/internal/bridge/service"
	apphttp "phone_printer/internal/http"
	"phone_printer/platform/logger"
)

// Module is the bridge module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the bridge module around the shared formatter.
func NewModule(formatter service.Formatter, log *logger.Logger) *Module {
	return &Module{handler: handler.New(formatter, log)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "bridge"
}

// RegisterRoutes mounts the WebSocket endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/bridge/ws", m.handler.Serve)
}

var _ apphttp.Module = (*Module)(nil)
