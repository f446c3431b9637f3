package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanisha366/backened/internal/broker"
	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/testutil"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zap.InfoLevel)
	previous := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = previous })
	return logs
}

func TestRun_RequiresRedis(t *testing.T) {
	err := run(context.Background(), &config.Config{})
	assert.ErrorIs(t, err, errNoRedis)
}

func TestRun_LogsPublishedEvents(t *testing.T) {
	logs := observeLogs(t)
	testRedis := testutil.SetupTestRedis(t)
	defer testRedis.Teardown(t)

	cfg := &config.Config{RedisURL: testRedis.URL, EventsChannel: "contact:test"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Listening for message events").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	publisher, err := broker.NewRedisMessageBroker(context.Background(), cfg.RedisURL, cfg.EventsChannel)
	require.NoError(t, err)
	defer publisher.Close()

	require.NoError(t, publisher.Publish(context.Background(), broker.Event{
		Type:      broker.EventMessageCreated,
		MessageID: "abc123",
		Name:      "Ada",
		Email:     "ada@example.com",
		Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, publisher.Publish(context.Background(), broker.Event{
		Type:         broker.EventMessagesDeleted,
		DeletedCount: 4,
		Timestamp:    time.Now().UTC(),
	}))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Messages cleared").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	created := logs.FilterMessage("New contact message").All()
	require.Len(t, created, 1)
	assert.Equal(t, "abc123", created[0].ContextMap()["message_id"])
	assert.Equal(t, int64(4), logs.FilterMessage("Messages cleared").All()[0].ContextMap()["deleted_count"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop after cancellation")
	}
}
