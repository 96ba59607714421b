package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
)

type ReactionSummary struct {
	Counts       map[string]int64 `json:"counts"`
	UserReaction string           `json:"user_reaction,omitempty"`
}

type ReactionRepository interface {
	// Upsert replaces the session's previous reaction, if any.
	Upsert(ctx context.Context, reaction *domain.Reaction) error
	Counts(ctx context.Context, questionID uuid.UUID) (map[string]int64, error)
	EmojiForSession(ctx context.Context, questionID uuid.UUID, sessionID string) (string, error)
}

type ReactInput struct {
	QuestionID uuid.UUID
	SessionID  string
	Emoji      string
}

type ReactionService interface {
	React(ctx context.Context, input ReactInput) error
	Reactions(ctx context.Context, questionID uuid.UUID, sessionID string) (*ReactionSummary, error)
}
