package database

import (
	"context"
	"fmt"

	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/repository"
	"github.com/tanisha366/backened/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func connectMongo(ctx context.Context, cfg *config.Config) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
	repo := repository.NewMongoMessageRepository(coll)
	if err := repo.EnsureIndexes(ctx); err != nil {
		// listing still works without the index, only slower
		logger.Log.Warn("Failed to create message indexes", zap.Error(err))
	}

	logger.Log.Info("MongoDB connected successfully",
		zap.String("database", cfg.MongoDatabase),
		zap.String("collection", cfg.MongoCollection),
	)

	return &Storage{
		Messages: repo,
		closeFn:  client.Disconnect,
	}, nil
}
