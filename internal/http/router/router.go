package router

import (
	"context"
	"io/fs"
	"net/http"
	"strings"
	"time"

	apphttp "phone_printer/internal/http"
	"phone_printer/platform/apperr"
	"phone_printer/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const readinessTimeout = 2 * time.Second

// New builds the gin engine: middleware, health endpoints, module routes and
// the embedded UI.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/api/health", func(c *gin.Context) {
		httpkit.OK(c, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", func(c *gin.Context) {
		if app.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
			defer cancel()
			if err := app.Health.Ping(ctx); err != nil {
				app.Logger.WithContext(c.Request.Context()).Warn("readiness check failed", "error", err)
				httpkit.HandleError(c, apperr.Unavailable("not ready").WithOp("router.ready"))
				return
			}
		}
		httpkit.OK(c, gin.H{"status": "ready"})
	})

	limiter := httpkit.NewIPRateLimiter(rate.Limit(app.Config.GetRateLimitRPS()), app.Config.GetRateLimitBurst(), app.Logger)
	v1 := engine.Group("/api/v1")
	v1.Use(limiter.RateLimit())

	rc := &apphttp.RouterContext{Engine: engine, V1: v1}
	for _, m := range app.Modules {
		m.RegisterRoutes(rc)
		app.Logger.Debug("module routes registered", "module", m.Name())
	}

	if app.UI != nil {
		mountUI(engine, app.UI)
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.GetCORSOrigins()
	}
	return cc
}

// mountUI serves the single-page app. Unknown non-API GET paths fall back to
// index.html so client-side routes survive a reload.
func mountUI(engine *gin.Engine, ui fs.FS) {
	assets := http.FS(ui)
	engine.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", assets)
	})
	engine.StaticFS("/assets", subFS(ui, "assets"))

	engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			httpkit.Error(c, http.StatusNotFound, "not found", nil)
			return
		}
		c.FileFromFS("/", assets)
	})
}

func subFS(root fs.FS, dir string) http.FileSystem {
	sub, err := fs.Sub(root, dir)
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
