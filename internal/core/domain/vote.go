package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote rows are append-only. At most one exists per (question, session),
// enforced by a unique constraint in storage.
type Vote struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	OptionID   uuid.UUID `json:"option_id"`
	SessionID  string    `json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
}
