package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tanisha366/backened/internal/broker"
	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/database"
	"github.com/tanisha366/backened/internal/server"
	"github.com/tanisha366/backened/internal/service"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Init(cfg.IsDevelopment()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run has already closed storage and the broker when it returns
	if err := run(ctx, cfg); err != nil {
		logger.Log.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Log.Info("Server gracefully stopped")
}

// run serves until ctx is cancelled. Any startup or serve failure is returned
// so main can exit non-zero.
func run(ctx context.Context, cfg *config.Config) error {
	// No partial-availability mode: without storage the process exits
	storage, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage connection failed (%s): %w", cfg.StorageDriver, err)
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			logger.Log.Warn("Failed to close storage", zap.Error(err))
		}
	}()

	var messageBroker broker.MessageBroker = broker.NoopBroker{}
	if cfg.RedisURL != "" {
		redisBroker, err := broker.NewRedisMessageBroker(ctx, cfg.RedisURL, cfg.EventsChannel)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis broker: %w", err)
		}
		messageBroker = redisBroker
		logger.Log.Info("Publishing message events", zap.String("channel", cfg.EventsChannel))
	}
	defer messageBroker.Close()

	messageService := service.NewMessageService(storage.Messages, messageBroker)
	router := server.NewRouter(cfg, messageService)
	srv := server.New(cfg, router)

	logger.Log.Info("Server running",
		zap.String("addr", cfg.Addr()),
		zap.String("messages_api", "http://localhost:"+cfg.ServerPort+"/api/messages"),
		zap.String("health_check", "http://localhost:"+cfg.ServerPort+"/api/health"),
		zap.Strings("cors_origins", cfg.AllowedOrigins),
	)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("failed to serve on %s: %w", cfg.Addr(), err)
	}
	return nil
}
