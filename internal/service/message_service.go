package service

import (
	"context"
	"errors"
	"time"

	"github.com/tanisha366/backened/internal/broker"
	"github.com/tanisha366/backened/internal/models"
	"github.com/tanisha366/backened/internal/repository"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
)

var ErrInvalidMessage = errors.New("all fields are required")

type MessageService struct {
	messageRepo repository.MessageRepository
	broker      broker.MessageBroker
	now         func() time.Time
}

func NewMessageService(messageRepo repository.MessageRepository, b broker.MessageBroker) *MessageService {
	if b == nil {
		b = broker.NoopBroker{}
	}
	return &MessageService{
		messageRepo: messageRepo,
		broker:      b,
		now:         time.Now,
	}
}

// CreateMessage validates req, stamps the submission time and stores it.
// Validation failures wrap ErrInvalidMessage.
func (s *MessageService) CreateMessage(ctx context.Context, req models.CreateMessageRequest) (*models.Message, error) {
	fields, err := req.Normalize()
	if err != nil {
		return nil, errors.Join(ErrInvalidMessage, err)
	}

	msg := &models.Message{
		Name:    fields.Name,
		Email:   fields.Email,
		Message: fields.Message,
		// millisecond precision survives every backend unchanged
		Date: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publish(ctx, broker.Event{
		Type:      broker.EventMessageCreated,
		MessageID: msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Timestamp: msg.Date,
	})

	return msg, nil
}

// ListMessages returns every message, newest first
func (s *MessageService) ListMessages(ctx context.Context) ([]models.Message, error) {
	return s.messageRepo.FindAll(ctx)
}

// DeleteAllMessages removes every message unconditionally
func (s *MessageService) DeleteAllMessages(ctx context.Context) (int64, error) {
	deleted, err := s.messageRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, broker.Event{
		Type:         broker.EventMessagesDeleted,
		DeletedCount: deleted,
		Timestamp:    s.now().UTC(),
	})

	return deleted, nil
}

// StorageConnected reports whether storage answers a ping within timeout
func (s *MessageService) StorageConnected(ctx context.Context, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.messageRepo.Ping(ctx); err != nil {
		logger.Log.Warn("Storage ping failed", zap.Error(err))
		return false
	}
	return true
}

// publish never fails the caller: the write has already happened
func (s *MessageService) publish(ctx context.Context, event broker.Event) {
	if err := s.broker.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Log.Warn("Failed to publish message event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}
