package repository

import (
	"context"
	"errors"

	"github.com/tanisha366/backened/internal/models"
)

// ErrStorage marks every failure coming from the storage layer
var ErrStorage = errors.New("storage error")

// MessageRepository persists contact messages
type MessageRepository interface {
	// Create assigns an ID to message and stores it
	Create(ctx context.Context, message *models.Message) error
	// FindAll returns every message, newest first
	FindAll(ctx context.Context) ([]models.Message, error)
	// DeleteAll removes every message and reports how many were removed
	DeleteAll(ctx context.Context) (int64, error)
	// Ping reports whether storage is reachable
	Ping(ctx context.Context) error
}
