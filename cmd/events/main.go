package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tanisha366/backened/internal/broker"
	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
)

var errNoRedis = errors.New("REDIS_URL is required to listen for message events")

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

	if err := run(ctx, cfg); err != nil {
		logger.Log.Fatal("Event listener stopped with error", zap.Error(err))
	}
	logger.Log.Info("Event listener stopped")
}

// run logs every message event published by the API until ctx is cancelled
func run(ctx context.Context, cfg *config.Config) error {
	if cfg.RedisURL == "" {
		return errNoRedis
	}

	redisBroker, err := broker.NewRedisMessageBroker(ctx, cfg.RedisURL, cfg.EventsChannel)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis broker: %w", err)
	}
	defer redisBroker.Close()

	events, err := redisBroker.Subscribe(ctx)
	if err != nil {
		return err
	}
	logger.Log.Info("Listening for message events", zap.String("channel", cfg.EventsChannel))

	for event := range events {
		switch event.Type {
		case broker.EventMessageCreated:
			logger.Log.Info("New contact message",
				zap.String("message_id", event.MessageID),
				zap.String("name", event.Name),
				zap.String("email", event.Email),
				zap.Time("timestamp", event.Timestamp),
			)
		case broker.EventMessagesDeleted:
			logger.Log.Info("Messages cleared",
				zap.Int64("deleted_count", event.DeletedCount),
				zap.Time("timestamp", event.Timestamp),
			)
		default:
			logger.Log.Warn("Unknown message event", zap.String("type", event.Type))
		}
	}
	return nil
}
