package domain

import (
	"time"

	"github.com/google/uuid"
)

type ImpressionAction string

const (
	ActionShown   ImpressionAction = "shown"
	ActionSkipped ImpressionAction = "skipped"
	ActionVoted   ImpressionAction = "voted"
)

// Impression records that a session was exposed to a question. One row per
// (question, session); later interactions update the action in place.
// "voted" is terminal and is never downgraded.
type Impression struct {
	ID         uuid.UUID        `json:"id"`
	QuestionID uuid.UUID        `json:"question_id"`
	SessionID  string           `json:"session_id"`
	Action     ImpressionAction `json:"action"`
	CreatedAt  time.Time        `json:"created_at"`
}
