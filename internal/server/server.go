package server

import (
	"context"
	"net/http"
	"time"

	"github.com/creditdesk/credit-intake-be/internal/auth"
	"github.com/creditdesk/credit-intake-be/internal/config"
	"github.com/creditdesk/credit-intake-be/internal/http/handlers"
	"github.com/creditdesk/credit-intake-be/internal/middleware"
	"github.com/creditdesk/credit-intake-be/internal/storage"
)

// Store is the persistence surface the server needs.
type Store interface {
	storage.UserStore
	storage.ApplicationStore
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store Store) *Server {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, hasher, tokens).Register(mux)

	protected := http.NewServeMux()
	handlers.NewApplicationHandler(store).Register(protected)
	guarded := middleware.RequireAuth(tokens, store, protected)
	mux.Handle("/applications", guarded)
	mux.Handle("/applications/", guarded)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
