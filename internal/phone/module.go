// Package phone provides the phone formatting HTTP module.
package phone

import (
	apphttp "phone_printer/internal/http"
	"phone_printer/internal/phone/handler"
	"phone_printer/internal/phone/service"
	"phone_printer/platform/logger"
	platformphone "phone_printer/platform/phone"
	"phone_printer/platform/validator"
)

// Module is the phone module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the phone module around a shared formatter.
func NewModule(formatter *platformphone.Formatter, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(formatter, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "phone"
}

// Service returns the service layer, shared with the UI bridge.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the phone routes under /api/v1/phone.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/phone")
	group.POST("/format", m.handler.Format)
	group.POST("/validate", m.handler.Validate)
	group.GET("/regions", m.handler.ListRegions)
	group.GET("/regions/:code", m.handler.GetRegion)
	group.GET("/qr", m.handler.QRCode)
}

var _ apphttp.Module = (*Module)(nil)
