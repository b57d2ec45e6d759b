package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DispatchMessage is the self-contained unit of work carried through the
// dispatch queue. Text is a snapshot taken when the log was created; the
// consumer classifies the snapshot and never re-reads the log row, so a
// message stays processable on its own.
type DispatchMessage struct {
	ID           uuid.UUID
	EmotionLogID uuid.UUID
	UserID       uuid.UUID
	Text         string
	Attempts     int
	CreatedAt    time.Time
}

// Validate checks the fields a message needs before it may be published.
func (m DispatchMessage) Validate() error {
	var errs []FieldError

	if m.EmotionLogID == uuid.Nil {
		errs = append(errs, FieldError{Field: "emotion_log_id", Message: "required"})
	}
	if m.UserID == uuid.Nil {
		errs = append(errs, FieldError{Field: "user_id", Message: "required"})
	}
	if strings.TrimSpace(m.Text) == "" {
		errs = append(errs, FieldError{Field: "text", Message: "required"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// DispatchStats are aggregate message counts by status.
type DispatchStats struct {
	Pending int
	Leased  int
	Done    int
	Dead    int
	Total   int
}
