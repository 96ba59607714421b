package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type reactionService struct {
	questionRepo ports.QuestionRepository
	reactionRepo ports.ReactionRepository
}

func NewReactionService(questionRepo ports.QuestionRepository, reactionRepo ports.ReactionRepository) ports.ReactionService {
	return &reactionService{
		questionRepo: questionRepo,
		reactionRepo: reactionRepo,
	}
}

// React stores the session's emoji take on a question, replacing any
// previous one.
func (s *reactionService) React(ctx context.Context, input ports.ReactInput) error {
	if !domain.IsValidReactionEmoji(input.Emoji) {
		return fmt.Errorf("%w: unknown reaction %q", domain.ErrValidation, input.Emoji)
	}

	if _, err := s.questionRepo.GetByID(ctx, input.QuestionID); err != nil {
		return err
	}

	reaction := &domain.Reaction{
		ID:         uuid.New(),
		QuestionID: input.QuestionID,
		SessionID:  input.SessionID,
		Emoji:      input.Emoji,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.reactionRepo.Upsert(ctx, reaction); err != nil {
		return fmt.Errorf("failed to store reaction: %w", err)
	}
	return nil
}

func (s *reactionService) Reactions(ctx context.Context, questionID uuid.UUID, sessionID string) (*ports.ReactionSummary, error) {
	counts, err := s.reactionRepo.Counts(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reaction counts: %w", err)
	}

	userReaction, err := s.reactionRepo.EmojiForSession(ctx, questionID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session reaction: %w", err)
	}

	return &ports.ReactionSummary{
		Counts:       counts,
		UserReaction: userReaction,
	}, nil
}
