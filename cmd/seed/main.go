package main

import (
	"context"
	"flag"
	"log"

	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/database"
	"github.com/tanisha366/backened/internal/models"
	"github.com/tanisha366/backened/internal/service"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
)

var samples = []struct{ name, email, message string }{
	{"Ada Lovelace", "ada@example.com", "Loved the analytical engine write-up."},
	{"Alan Turing", "alan@example.com", "Could we collaborate on a decidability demo?"},
	{"Grace Hopper", "grace@example.com", "Found a moth in the contact form. Fixed it."},
}

func main() {
	reset := flag.Bool("reset", false, "delete every existing message before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := logger.Init(true); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	storage, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Storage connection failed", zap.Error(err))
	}
	defer storage.Close(ctx)

	messageService := service.NewMessageService(storage.Messages, nil)

	if *reset {
		deleted, err := messageService.DeleteAllMessages(ctx)
		if err != nil {
			logger.Log.Fatal("Failed to delete messages", zap.Error(err))
		}
		logger.Log.Info("Deleted existing messages", zap.Int64("deleted_count", deleted))
	}

	for _, s := range samples {
		name, email, message := s.name, s.email, s.message
		msg, err := messageService.CreateMessage(ctx, models.CreateMessageRequest{
			Name:    &name,
			Email:   &email,
			Message: &message,
		})
		if err != nil {
			logger.Log.Fatal("Failed to seed message", zap.Error(err))
		}
		logger.Log.Info("Seeded message", zap.String("message_id", msg.ID), zap.String("name", msg.Name))
	}
}
