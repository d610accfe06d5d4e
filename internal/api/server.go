// Package api assembles the HTTP server exposing the reconciliation
// engine and run history.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/thepsychonaut421/financio-recon/internal/api/handlers"
	"github.com/thepsychonaut421/financio-recon/internal/api/middleware"
	"github.com/thepsychonaut421/financio-recon/internal/application/service"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new API server. repo may be nil, in which case
// the run-history endpoints are not registered.
func NewServer(cfg Config, svc *service.ReconcileService, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check without /api prefix, for load balancers.
	router.GET("/health", handlers.Health)

	v1 := router.Group("/api/v1")
	{
		reconcileHandler := handlers.NewReconcileHandler(svc, logger)
		v1.POST("/reconcile", reconcileHandler.Reconcile)

		if repo != nil {
			runsHandler := handlers.NewRunsHandler(repo)
			v1.GET("/runs", runsHandler.List)
			v1.GET("/runs/:id", runsHandler.Get)
		}
	}

	return &Server{
		config: cfg,
		router: router,
		logger: logger,
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
