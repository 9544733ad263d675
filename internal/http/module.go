// Package http provides HTTP server infrastructure including the Module interface
// that all modules must implement for route registration.
package http

import (
	"github.com/gin-gonic/gin"
)

// Module represents a feature area that can register its HTTP routes.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the rate-limited /api/v1 route group.
	V1 *gin.RouterGroup
}
