package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/handler"
	"github.com/tanisha366/backened/internal/middleware"
	"github.com/tanisha366/backened/internal/service"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
)

// NewRouter wires middleware and the /api routes around messageService
func NewRouter(cfg *config.Config, messageService *service.MessageService) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggerMiddleware(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.SecurityHeadersMiddleware(),
		middleware.HSTSMiddleware(!cfg.IsDevelopment()),
	)

	healthHandler := handler.NewHealthHandler(messageService, cfg.HealthTimeout)
	messageHandler := handler.NewMessageHandler(messageService)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/messages", messageHandler.List)
		api.POST("/messages", messageHandler.Create)
		api.DELETE("/messages", messageHandler.DeleteAll)
	}

	return router
}

// Server is the HTTP server with graceful shutdown
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func New(cfg *config.Config, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
