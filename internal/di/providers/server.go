package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/shopsavvy/catalog-server/internal/api"
	"github.com/shopsavvy/catalog-server/internal/config"
	"github.com/shopsavvy/catalog-server/internal/logger"
	"github.com/shopsavvy/catalog-server/internal/ratelimit"
	"github.com/shopsavvy/catalog-server/internal/service"
)

// RateLimiterHandle wraps the keyed rate limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-session API rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	rps := float64(cfg.RateLimit.RequestsPerMinute) / 60.0
	return &RateLimiterHandle{
		KeyedRateLimiter: ratelimit.New(rps, cfg.RateLimit.Burst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)

	services := &api.Services{
		Catalog: do.MustInvoke[*service.CatalogService](i),
		Cart:    do.MustInvoke[*service.CartService](i),
		Compare: do.MustInvoke[*service.CompareService](i),
	}

	handler := api.NewServer(services, sseHandle.Manager, limiterHandle.KeyedRateLimiter, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv}, nil
}
