package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tanisha366/backened/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository stores messages in a SQL table (PostgreSQL or SQLite)
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	// v7 IDs sort by creation time, which keeps the listing tie-break stable
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("%w: generate id: %w", ErrStorage, err)
	}
	message.ID = id.String()

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("%w: insert message: %w", ErrStorage, err)
	}
	return nil
}

func (r *GormMessageRepository) FindAll(ctx context.Context) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: find messages: %w", ErrStorage, err)
	}
	return messages, nil
}

func (r *GormMessageRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Message{})
	if result.Error != nil {
		return 0, fmt.Errorf("%w: delete messages: %w", ErrStorage, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormMessageRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrStorage, err)
	}
	return nil
}
