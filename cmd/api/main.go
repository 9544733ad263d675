package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phone_printer/internal/bridge"
	apphttp "phone_printer/internal/http"
	"phone_printer/internal/http/router"
	phonemodule "phone_printer/internal/phone"
	"phone_printer/platform/cache"
	"phone_printer/platform/config"
	"phone_printer/platform/logger"
	"phone_printer/platform/phone"
	"phone_printer/platform/validator"
	"phone_printer/web"

	"golang.org/x/sync/errgroup"
)

const cacheKeyPrefix = "phone_printer:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// The metadata table is compiled into the library; building the
	// formatter indexes it once for the lifetime of the process.
	formatter := phone.NewFormatter(cfg.GetPhoneDefaultRegion())
	log.Info("phone metadata loaded", "regions", len(formatter.Regions()), "defaultRegion", formatter.DefaultRegion())

	val := validator.NewWithRegions(formatter)

	resultCache, closeCache := initCache(ctx, cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// ========================================================================
	// Modules (Composition Root)
	// ========================================================================

	phoneModule := phonemodule.NewModule(formatter, val, log)
	var health apphttp.HealthChecker
	if resultCache != nil {
		phoneModule.Service().SetCache(resultCache, cfg.GetPhoneCacheTTL())
		health = resultCache
	}

	// The bridge dispatches to the same service as the HTTP API so both
	// share the cache.
	bridgeModule := bridge.NewModule(phoneModule.Service(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		UI:     web.FS,
		Modules: []apphttp.Module{
			phoneModule,
			bridgeModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.GetHTTPAddr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

// initCache connects to Redis when configured. The service works without it,
// so a failed connection only disables caching.
func initCache(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (*cache.RedisCache, func()) {
	if !cfg.IsCacheEnabled() {
		log.Warn("REDIS_URL not configured; validation cache disabled")
		return nil, nil
	}

	redisCache, err := cache.NewRedis(cfg, cacheKeyPrefix)
	if err != nil {
		log.Error("failed to initialize validation cache", "error", err)
		return nil, nil
	}

	if err := withRetry(ctx, log, "redis ping", 3, time.Second, func() error {
		return redisCache.Ping(ctx)
	}); err != nil {
		log.Error("redis unreachable; validation cache disabled", "error", err)
		_ = redisCache.Close()
		return nil, nil
	}
	log.Info("validation cache enabled", "ttl", cfg.GetPhoneCacheTTL().String())

	return redisCache, func() {
		_ = redisCache.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
