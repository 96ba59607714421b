package services

import (
	"context"
	"fmt"

	"github.com/versus/api/internal/core/ports"
)

const defaultFeedPageSize = 10

type feedService struct {
	questionRepo ports.QuestionRepository
	ranker       *FeedRanker
	pageSize     int
}

func NewFeedService(questionRepo ports.QuestionRepository, ranker *FeedRanker, pageSize int) ports.FeedService {
	if pageSize <= 0 {
		pageSize = defaultFeedPageSize
	}
	return &feedService{
		questionRepo: questionRepo,
		ranker:       ranker,
		pageSize:     pageSize,
	}
}

// Feed returns the top slice of the ranked, per-session-deduplicated
// candidate set. An empty page means the session has seen every active
// question.
func (s *feedService) Feed(ctx context.Context, sessionID string) (*ports.FeedPage, error) {
	candidates, err := s.questionRepo.ActiveUnseen(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed candidates: %w", err)
	}

	ranked := s.ranker.Rank(candidates)

	batch := ranked
	if len(batch) > s.pageSize {
		batch = batch[:s.pageSize]
	}

	return &ports.FeedPage{
		Questions: batch,
		Remaining: len(candidates) - len(batch),
	}, nil
}
