package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/tanisha366/backened/internal/models"
)

// CreateTestMessage builds a stored-looking message dated at the given time
func CreateTestMessage(name, email, body string, date time.Time) *models.Message {
	return &models.Message{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Message: body,
		Date:    date.UTC().Truncate(time.Millisecond),
	}
}

// DefaultTestMessage returns a message dated now
func DefaultTestMessage() *models.Message {
	return CreateTestMessage("Test User", "test@example.com", "Hello from the contact form", time.Now())
}

// ValidSubmission returns a POST /api/messages body with every field set
func ValidSubmission() map[string]string {
	return map[string]string{
		"name":    "Test User",
		"email":   "test@example.com",
		"message": "Hello from the contact form",
	}
}
