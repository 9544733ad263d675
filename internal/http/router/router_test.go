package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	apphttp "phone_printer/internal/http"
	"phone_printer/platform/logger"

	"github.com/gin-gonic/gin"
)

type testConfig struct{}

func (testConfig) GetHTTPAddr() string               { return ":0" }
func (testConfig) GetCORSAllowAll() bool             { return false }
func (testConfig) GetCORSOrigins() []string          { return []string{"http://localhost:8080"} }
func (testConfig) GetCORSAllowCreds() bool           { return false }
func (testConfig) GetShutdownTimeout() time.Duration { return time.Second }
func (testConfig) GetRateLimitRPS() float64          { return 100 }
func (testConfig) GetRateLimitBurst() int            { return 100 }

type failingHealth struct{}

func (failingHealth) Ping(context.Context) error { return errors.New("down") }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }
func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newTestEngine(health apphttp.HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(&apphttp.App{
		Config:  testConfig{},
		Logger:  logger.Nop(),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
		UI: fstest.MapFS{
			"index.html":      {Data: []byte("<html>ui</html>")},
			"assets/main.js":  {Data: []byte("console.log('ui')")},
			"assets/main.css": {Data: []byte("body{}")},
		},
	})
}

func serve(engine http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthAndModules(t *testing.T) {
	engine := newTestEngine(nil)

	if w := serve(engine, "/api/health"); w.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", w.Code)
	}
	if w := serve(engine, "/api/ready"); w.Code != http.StatusOK {
		t.Fatalf("expected ready 200 without a health checker, got %d", w.Code)
	}
	w := serve(engine, "/api/v1/ping")
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("expected module route, got %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestReadyReportsUnhealthyDependency(t *testing.T) {
	engine := newTestEngine(failingHealth{})

	w := serve(engine, "/api/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"not ready"`) {
		t.Fatalf("expected not ready body, got %s", w.Body.String())
	}
}

func TestEmbeddedUI(t *testing.T) {
	engine := newTestEngine(nil)

	w := serve(engine, "/")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ui") {
		t.Fatalf("expected index page, got %d %q", w.Code, w.Body.String())
	}
	if w := serve(engine, "/assets/main.js"); w.Code != http.StatusOK {
		t.Fatalf("expected asset 200, got %d", w.Code)
	}
	if w := serve(engine, "/some/client/route"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ui") {
		t.Fatalf("expected SPA fallback, got %d", w.Code)
	}
	if w := serve(engine, "/api/v1/missing"); w.Code != http.StatusNotFound {
		t.Fatalf("expected API 404, got %d", w.Code)
	}
}
