package domain

import (
	"time"

	"github.com/google/uuid"
)

var ValidReactionEmojis = []string{"fire", "shocked", "fair", "wrong"}

// Reaction is a session's single emoji take on a question. A second reaction
// from the same session replaces the first.
type Reaction struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	SessionID  string    `json:"session_id"`
	Emoji      string    `json:"emoji"`
	CreatedAt  time.Time `json:"created_at"`
}

func IsValidReactionEmoji(emoji string) bool {
	for _, e := range ValidReactionEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}
