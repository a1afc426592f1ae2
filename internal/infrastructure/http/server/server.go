// Package server provides the HTTP server hosting the substitution API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/proteinempire/ingredients/internal/domain/ingredient"
	"github.com/proteinempire/ingredients/internal/infrastructure/config"
	"github.com/proteinempire/ingredients/internal/infrastructure/http/handlers"
	"github.com/proteinempire/ingredients/internal/infrastructure/http/middleware"
	"github.com/proteinempire/ingredients/internal/ports/inbound"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	router  *chi.Mux
	server  *http.Server
	service inbound.SubstitutionService
	catalog *ingredient.Catalog
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	service inbound.SubstitutionService,
	catalog *ingredient.Catalog,
) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		service: service,
		catalog: catalog,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// Handler returns the configured router, used directly in tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())

	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))

	// Compression for the larger session views
	r.Use(chimiddleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	h := handlers.NewAPIHandlers(s.service, s.catalog, s.config, s.logger)

	// Substitution sessions
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.DeleteSession)
		r.Post("/{id}/substitutions", h.SelectSubstitute)
		r.Post("/{id}/revert", h.RevertIngredient)
		r.Post("/{id}/reset", h.ResetSession)
		r.Post("/{id}/picker", h.TogglePicker)
	})

	// Catalog queries
	r.Route("/ingredients", func(r chi.Router) {
		r.Get("/{id}", h.GetIngredient)
		r.Get("/{id}/substitutes", h.GetSubstitutes)
	})
	r.Route("/groups", func(r chi.Router) {
		r.Get("/", h.ListGroups)
		r.Get("/{name}", h.GetGroup)
	})

	// Health check
	r.Get("/health", h.HealthCheck)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	// Enable HTTP/2
	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
