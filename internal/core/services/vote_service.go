package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type voteService struct {
	questionRepo ports.QuestionRepository
	voteRepo     ports.VoteRepository
}

func NewVoteService(questionRepo ports.QuestionRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		questionRepo: questionRepo,
		voteRepo:     voteRepo,
	}
}

// Vote records a vote exactly once per (question, session) and returns the
// updated per-option results. The HasVoted pre-check is a fast path only:
// the storage unique constraint is the authoritative conflict signal, and
// the repository converts violations into domain.ErrAlreadyVoted.
func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.QuestionResults, error) {
	question, err := s.questionRepo.GetByID(ctx, input.QuestionID)
	if err != nil {
		return nil, err
	}

	validOption := false
	for _, opt := range question.Options {
		if opt.ID == input.OptionID {
			validOption = true
			break
		}
	}
	if !validOption {
		return nil, domain.ErrInvalidOption
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, input.QuestionID, input.SessionID)
	if err != nil {
		return nil, err
	}
	if hasVoted {
		return nil, domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:         uuid.New(),
		QuestionID: input.QuestionID,
		OptionID:   input.OptionID,
		SessionID:  input.SessionID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		return nil, err
	}

	updated, err := s.questionRepo.GetByID(ctx, input.QuestionID)
	if err != nil {
		return nil, err
	}

	return buildResults(updated, input.OptionID), nil
}

func (s *voteService) MyVote(ctx context.Context, questionID uuid.UUID, sessionID string) (*domain.Vote, error) {
	return s.voteRepo.VoteForSession(ctx, questionID, sessionID)
}

// buildResults computes percentages and winner flags from current counts.
// Pass uuid.Nil as userOptionID for a viewer who has not voted.
func buildResults(q *domain.Question, userOptionID uuid.UUID) *domain.QuestionResults {
	var maxVotes int64
	for _, o := range q.Options {
		if o.VoteCount > maxVotes {
			maxVotes = o.VoteCount
		}
	}

	results := make([]domain.OptionResult, 0, len(q.Options))
	for _, o := range q.Options {
		pct := 0
		if q.TotalVotes > 0 {
			pct = int(math.Round(float64(o.VoteCount) / float64(q.TotalVotes) * 100))
		}
		results = append(results, domain.OptionResult{
			OptionID:   o.ID,
			Name:       o.Name,
			Subtitle:   o.Subtitle,
			VoteCount:  o.VoteCount,
			Percentage: pct,
			IsWinner:   o.VoteCount == maxVotes && o.VoteCount > 0,
			IsUserVote: userOptionID != uuid.Nil && o.ID == userOptionID,
		})
	}

	return &domain.QuestionResults{
		QuestionID: q.ID,
		Prompt:     q.Prompt,
		TotalVotes: q.TotalVotes,
		Results:    results,
	}
}
