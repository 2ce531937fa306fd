// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/savora/savora/internal/platform/config"
	"github.com/savora/savora/internal/platform/constants"
	"github.com/savora/savora/internal/platform/middleware"
	"github.com/savora/savora/internal/recipe/ingredient"
	"github.com/savora/savora/internal/recipe/recipe"
	"github.com/savora/savora/internal/recipe/tag"
	"github.com/savora/savora/internal/users/account"
	"github.com/savora/savora/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the authentication lifecycle (create, token, recovery).
	Auth *auth.Handler

	// Account handles the signed-in user's own profile (/user/me).
	Account *account.Handler

	// Recipe handles the owner-scoped cookbook.
	Recipe *recipe.Handler

	// Tag handles owner-scoped recipe tags.
	Tag *tag.Handler

	// Ingredient handles the owner-scoped pantry.
	Ingredient *ingredient.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API

	// Identity: public entry points plus the authenticated /me profile.
	r.Route("/user", func(user chi.Router) {
		h.Auth.RegisterRoutes(user)

		user.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			h.Account.RegisterRoutes(protected)
		})
	})

	// Cookbook: every endpoint requires a signed-in owner.
	r.Route("/recipe", func(cookbook chi.Router) {
		cookbook.Use(middleware.RequireAuth)

		cookbook.Route("/recipes", func(rt chi.Router) { h.Recipe.RegisterRoutes(rt) })
		cookbook.Route("/tags", func(rt chi.Router) { h.Tag.RegisterRoutes(rt) })
		cookbook.Route("/ingredients", func(rt chi.Router) { h.Ingredient.RegisterRoutes(rt) })
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
