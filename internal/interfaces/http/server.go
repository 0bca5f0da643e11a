// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
)

const maxRequestBody = 1 << 20

// Server represents the local storefront HTTP server
type Server struct {
	config     *config.Config
	log        *logrus.Logger
	gin        *gin.Engine
	httpServer *http.Server
}

// NewServer creates a new HTTP server instance with middleware and routes in place
func NewServer(cfg *config.Config, log *logrus.Logger, h routes.Handlers) *Server {
	gin.SetMode(ginMode(cfg, gin.Mode()))

	s := &Server{
		config: cfg,
		log:    log,
		gin:    gin.New(),
	}
	s.setupMiddleware()
	routes.SetupRoutes(s.gin, h)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// ginMode picks the gin mode for the environment. Debug output is only for
// development; test mode set by a test binary is left alone.
func ginMode(cfg *config.Config, current string) string {
	switch {
	case current == gin.TestMode:
		return gin.TestMode
	case cfg.IsProduction():
		return gin.ReleaseMode
	case cfg.IsDevelopment():
		return gin.DebugMode
	default:
		return gin.ReleaseMode
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.log.Infof("🚀 Storefront starting on http://localhost:%s", s.config.Server.Port)
	s.log.Infof("🛒 Store API: %s", s.config.API.BaseURL)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.log))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RequestSizeLimit(maxRequestBody))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}
