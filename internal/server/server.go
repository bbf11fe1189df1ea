package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/innerventory/server/internal/audit"
	"github.com/innerventory/server/internal/auth"
	"github.com/innerventory/server/internal/config"
	"github.com/innerventory/server/internal/events"
	"github.com/innerventory/server/internal/http/handlers"
	"github.com/innerventory/server/internal/inventory"
	"github.com/innerventory/server/internal/metrics"
	"github.com/innerventory/server/internal/middleware"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, repo storage.Repository, logger zerolog.Logger) *Server {
	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, repo, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
}

// Handler builds the full middleware chain and route table.
func Handler(cfg config.Config, repo storage.Repository, logger zerolog.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	auditLog := audit.NewLogger(logger)
	guards := handlers.Guards{
		Auth:  middleware.RequireAuth(tokens),
		Admin: middleware.RequireRole(models.RoleAdmin),
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), repo.Ping).Register(mux)
	mux.Handle("GET /metrics", metrics.Handler())
	handlers.NewAuthHandler(repo.Users(), tokens).Register(mux, guards, middleware.NewRateLimiter(cfg.LoginRatePerMinute))

	reconciler := inventory.NewReconciler(cfg.StrictStock, logger)
	handlers.NewEventHandler(events.NewService(repo, auditLog, reconciler, logger)).Register(mux, guards)
	handlers.NewBraHandler(inventory.NewService(repo, auditLog, logger)).Register(mux, guards)
	handlers.NewLogHandler(repo.Audit(), auditLog).Register(mux, guards)

	// The metrics middleware reads r.Pattern, which the mux sets on the request it is given.
	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(logger)(handler)
	return middleware.CORS(cfg.CORSOrigins, handler)
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
