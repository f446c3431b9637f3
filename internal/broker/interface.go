package broker

import (
	"context"
	"time"
)

// Event types published on the events channel
const (
	EventMessageCreated  = "message.created"
	EventMessagesDeleted = "messages.deleted"
)

// Event notifies other processes about a change to the message collection
type Event struct {
	Type         string    `json:"type"`
	MessageID    string    `json:"message_id,omitempty"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	DeletedCount int64     `json:"deleted_count,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// MessageBroker fans out message events
type MessageBroker interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopBroker is used when no Redis URL is configured
type NoopBroker struct{}

func (NoopBroker) Publish(context.Context, Event) error { return nil }

func (NoopBroker) Close() error { return nil }
