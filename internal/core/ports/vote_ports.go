package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
)

// QuestionVoteCount pairs a question with its vote count over some window.
type QuestionVoteCount struct {
	QuestionID uuid.UUID
	Count      int64
}

type VoteRepository interface {
	// SaveVote runs the whole vote transaction: insert the vote row,
	// increment the option and question counters relatively, and upsert the
	// impression as "voted". A unique-constraint violation surfaces as
	// domain.ErrAlreadyVoted.
	SaveVote(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, questionID uuid.UUID, sessionID string) (bool, error)
	VoteForSession(ctx context.Context, questionID uuid.UUID, sessionID string) (*domain.Vote, error)
	// CountsSince returns per-question vote counts for votes cast after
	// since, highest first, capped at limit.
	CountsSince(ctx context.Context, since time.Time, limit int) ([]QuestionVoteCount, error)
}

type VoteInput struct {
	QuestionID uuid.UUID
	OptionID   uuid.UUID
	SessionID  string
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) (*domain.QuestionResults, error)
	// MyVote returns the session's existing vote on a question, or
	// domain.ErrVoteNotFound.
	MyVote(ctx context.Context, questionID uuid.UUID, sessionID string) (*domain.Vote, error)
}
