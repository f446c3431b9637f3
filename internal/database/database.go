package database

import (
	"context"
	"fmt"

	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/repository"
)

// Storage owns the message repository and the connection behind it
type Storage struct {
	Messages repository.MessageRepository
	closeFn  func(ctx context.Context) error
}

// Connect opens the backend selected by cfg.StorageDriver and verifies it is
// reachable. Callers must Close the returned Storage.
func Connect(ctx context.Context, cfg *config.Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch cfg.StorageDriver {
	case config.DriverMongo:
		return connectMongo(ctx, cfg)
	case config.DriverPostgres, config.DriverSQLite:
		return connectSQL(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func (s *Storage) Close(ctx context.Context) error {
	if s == nil || s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}
