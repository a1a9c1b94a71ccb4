// Package api provides the HTTP API server and handlers for the catalog
// application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shopsavvy/catalog-server/internal/ratelimit"
	"github.com/shopsavvy/catalog-server/internal/session"
	"github.com/shopsavvy/catalog-server/internal/sse"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services   *Services
	sseManager *sse.Manager
	limiter    *ratelimit.KeyedRateLimiter
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// sseManager and limiter may be nil (tests); the corresponding endpoints
// and protections are skipped.
func NewServer(services *Services, sseManager *sse.Manager, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		services:   services,
		sseManager: sseManager,
		limiter:    limiter,
		router:     chi.NewRouter(),
		logger:     logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Shop Savvy Catalog API", "1.0.0")
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerCartRoutes()
	s.registerCompareRoutes()

	if sseManager != nil {
		s.router.Get("/api/v1/events", sse.NewHandler(sseManager, logger).ServeHTTP)
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack. Session identification
// must run before the rate limiter so limits key on session rather than
// address where possible.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(session.Middleware)
	s.router.Use(s.rateLimitMiddleware)
}
