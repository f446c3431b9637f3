package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout always prints milliseconds so every timestamp has the same width
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Message is a single contact form submission.
type Message struct {
	ID      string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name    string    `gorm:"type:text;not null" json:"name"`
	Email   string    `gorm:"type:text;not null" json:"email"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Date    time.Time `gorm:"not null;index" json:"date"`
}

func (Message) TableName() string {
	return "messages"
}

func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{
		plain: plain(m),
		Date:  FormatTimestamp(m.Date),
	})
}

// CreateMessageRequest is the body of POST /api/messages.
// Fields are pointers so a missing or null key can be told apart from an empty one.
type CreateMessageRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Message *string `json:"message"`

	// keys present in the decoded body
	present []string
}

// UnmarshalJSON accepts only the name, email and message keys, each a string or null.
func (r *CreateMessageRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = CreateMessageRequest{}
	for key, value := range raw {
		field := r.field(key)
		if field == nil {
			return fmt.Errorf("json: unknown field %q", key)
		}
		if err := json.Unmarshal(value, field); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		r.present = append(r.present, key)
	}
	return nil
}

// Received echoes the submitted values. Keys sent as null map to nil and
// keys never sent are left out.
func (r CreateMessageRequest) Received() map[string]*string {
	out := make(map[string]*string, len(r.present))
	for _, key := range r.present {
		out[key] = *r.field(key)
	}
	return out
}

func (r *CreateMessageRequest) field(key string) **string {
	switch key {
	case "name":
		return &r.Name
	case "email":
		return &r.Email
	case "message":
		return &r.Message
	}
	return nil
}

// NewMessage holds trimmed, validated submission fields.
type NewMessage struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Message string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims every field and checks that none is empty.
// Email is only checked for presence.
func (r CreateMessageRequest) Normalize() (NewMessage, error) {
	msg := NewMessage{
		Name:    trimmed(r.Name),
		Email:   trimmed(r.Email),
		Message: trimmed(r.Message),
	}
	if err := validate.Struct(msg); err != nil {
		return NewMessage{}, err
	}
	return msg, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
