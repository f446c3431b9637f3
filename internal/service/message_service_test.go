package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tanisha366/backened/internal/broker"
	"github.com/tanisha366/backened/internal/models"
	"github.com/tanisha366/backened/internal/repository"
	"github.com/tanisha366/backened/internal/testutil"
)

func strPtr(s string) *string { return &s }

// MessageServiceTestSuite runs the service against in-memory SQLite and miniredis
type MessageServiceTestSuite struct {
	suite.Suite
	testDB    *testutil.TestDatabase
	testRedis *testutil.TestRedis
	broker    *broker.RedisMessageBroker
	service   *MessageService
	clock     time.Time
}

func (s *MessageServiceTestSuite) SetupSuite() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.testRedis = testutil.SetupTestRedis(s.T())

	b, err := broker.NewRedisMessageBroker(context.Background(), s.testRedis.URL, "contact:test")
	require.NoError(s.T(), err)
	s.broker = b
}

func (s *MessageServiceTestSuite) TearDownSuite() {
	_ = s.broker.Close()
	s.testRedis.Teardown(s.T())
	s.testDB.Teardown(s.T())
}

func (s *MessageServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.clock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.service = NewMessageService(repository.NewGormMessageRepository(s.testDB.DB), s.broker)
	s.service.now = func() time.Time {
		s.clock = s.clock.Add(time.Second)
		return s.clock
	}
}

func (s *MessageServiceTestSuite) validRequest() models.CreateMessageRequest {
	return models.CreateMessageRequest{
		Name:    strPtr("  Grace Hopper  "),
		Email:   strPtr(" grace@example.com "),
		Message: strPtr("\nFound a bug in the relay.\t"),
	}
}

func (s *MessageServiceTestSuite) TestCreateMessage() {
	msg, err := s.service.CreateMessage(context.Background(), s.validRequest())
	require.NoError(s.T(), err)

	assert.NotEmpty(s.T(), msg.ID)
	assert.Equal(s.T(), "Grace Hopper", msg.Name)
	assert.Equal(s.T(), "grace@example.com", msg.Email)
	assert.Equal(s.T(), "Found a bug in the relay.", msg.Message)
	assert.Equal(s.T(), time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC), msg.Date)
	assert.Equal(s.T(), int64(1), testutil.CountMessages(s.T(), s.testDB.DB))
}

func (s *MessageServiceTestSuite) TestCreateMessageTruncatesToMilliseconds() {
	s.service.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	}

	msg, err := s.service.CreateMessage(context.Background(), s.validRequest())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 123000000, msg.Date.Nanosecond())
}

func (s *MessageServiceTestSuite) TestCreateMessageValidation() {
	testCases := []struct {
		name string
		req  models.CreateMessageRequest
	}{
		{name: "Empty request", req: models.CreateMessageRequest{}},
		{name: "Whitespace only name", req: models.CreateMessageRequest{Name: strPtr("  "), Email: strPtr("a@b.c"), Message: strPtr("hi")}},
		{name: "Missing email", req: models.CreateMessageRequest{Name: strPtr("Bob"), Message: strPtr("hi")}},
		{name: "Blank message", req: models.CreateMessageRequest{Name: strPtr("Bob"), Email: strPtr("a@b.c"), Message: strPtr("\n\t")}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			msg, err := s.service.CreateMessage(context.Background(), tc.req)
			assert.Nil(s.T(), msg)
			assert.ErrorIs(s.T(), err, ErrInvalidMessage)
		})
	}

	assert.Equal(s.T(), int64(0), testutil.CountMessages(s.T(), s.testDB.DB))
}

func (s *MessageServiceTestSuite) TestListMessagesNewestFirst() {
	var created []*models.Message
	for i := 0; i < 3; i++ {
		msg, err := s.service.CreateMessage(context.Background(), s.validRequest())
		require.NoError(s.T(), err)
		created = append(created, msg)
	}

	messages, err := s.service.ListMessages(context.Background())
	require.NoError(s.T(), err)
	require.Len(s.T(), messages, 3)

	for i, msg := range messages {
		expected := created[len(created)-1-i]
		assert.Equal(s.T(), expected.ID, msg.ID)
		assert.True(s.T(), expected.Date.Equal(msg.Date))
	}
}

func (s *MessageServiceTestSuite) TestListMessagesEmpty() {
	messages, err := s.service.ListMessages(context.Background())
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), messages)
	assert.Empty(s.T(), messages)
}

func (s *MessageServiceTestSuite) TestDeleteAllMessages() {
	for i := 0; i < 4; i++ {
		_, err := s.service.CreateMessage(context.Background(), s.validRequest())
		require.NoError(s.T(), err)
	}

	deleted, err := s.service.DeleteAllMessages(context.Background())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(4), deleted)

	messages, err := s.service.ListMessages(context.Background())
	require.NoError(s.T(), err)
	assert.Empty(s.T(), messages)

	deleted, err = s.service.DeleteAllMessages(context.Background())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), deleted)
}

func (s *MessageServiceTestSuite) TestEventsArePublished() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := s.broker.Subscribe(ctx)
	require.NoError(s.T(), err)

	msg, err := s.service.CreateMessage(ctx, s.validRequest())
	require.NoError(s.T(), err)
	_, err = s.service.DeleteAllMessages(ctx)
	require.NoError(s.T(), err)

	var got []broker.Event
	for len(got) < 2 {
		select {
		case e := <-events:
			got = append(got, e)
		case <-ctx.Done():
			s.T().Fatal("Timed out waiting for events")
		}
	}

	assert.Equal(s.T(), broker.EventMessageCreated, got[0].Type)
	assert.Equal(s.T(), msg.ID, got[0].MessageID)
	assert.Equal(s.T(), broker.EventMessagesDeleted, got[1].Type)
	assert.Equal(s.T(), int64(1), got[1].DeletedCount)
}

func (s *MessageServiceTestSuite) TestStorageConnected() {
	assert.True(s.T(), s.service.StorageConnected(context.Background(), time.Second))
}

func TestMessageServiceSuite(t *testing.T) {
	suite.Run(t, new(MessageServiceTestSuite))
}

type failingBroker struct{}

func (failingBroker) Publish(context.Context, broker.Event) error { return errors.New("redis down") }

func (failingBroker) Close() error { return nil }

func TestCreateMessage_PublishFailureIsIgnored(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	svc := NewMessageService(repository.NewGormMessageRepository(testDB.DB), failingBroker{})

	msg, err := svc.CreateMessage(context.Background(), models.CreateMessageRequest{
		Name: strPtr("a"), Email: strPtr("b"), Message: strPtr("c"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
}

func TestStorageErrorsSurface(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	svc := NewMessageService(repository.NewGormMessageRepository(testDB.DB), nil)
	testDB.Teardown(t)

	_, err := svc.CreateMessage(context.Background(), models.CreateMessageRequest{
		Name: strPtr("a"), Email: strPtr("b"), Message: strPtr("c"),
	})
	assert.ErrorIs(t, err, repository.ErrStorage)

	_, err = svc.ListMessages(context.Background())
	assert.ErrorIs(t, err, repository.ErrStorage)

	_, err = svc.DeleteAllMessages(context.Background())
	assert.ErrorIs(t, err, repository.ErrStorage)

	assert.False(t, svc.StorageConnected(context.Background(), time.Second))
}
