package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

const (
	leaderboardLimit     = 20
	controversialMinVote = 5
	hotWindow            = 24 * time.Hour
)

type leaderboardService struct {
	questionRepo ports.QuestionRepository
	voteRepo     ports.VoteRepository
	now          func() time.Time
}

func NewLeaderboardService(questionRepo ports.QuestionRepository, voteRepo ports.VoteRepository) ports.LeaderboardService {
	return &leaderboardService{
		questionRepo: questionRepo,
		voteRepo:     voteRepo,
		now:          time.Now,
	}
}

func (s *leaderboardService) Leaderboard(ctx context.Context, tab string) ([]*domain.LeaderboardQuestion, error) {
	switch tab {
	case "", ports.LeaderboardHot:
		return s.hot(ctx)
	case ports.LeaderboardControversial:
		return s.controversial(ctx)
	case ports.LeaderboardMostVoted:
		return s.mostVoted(ctx)
	case ports.LeaderboardNewest:
		return s.newest(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown leaderboard tab %q", domain.ErrValidation, tab)
	}
}

// hot ranks by votes cast in the last 24 hours. A quiet day falls back to
// the all-time most-voted board so the tab is never empty.
func (s *leaderboardService) hot(ctx context.Context) ([]*domain.LeaderboardQuestion, error) {
	since := s.now().Add(-hotWindow)
	counts, err := s.voteRepo.CountsSince(ctx, since, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent votes: %w", err)
	}
	if len(counts) == 0 {
		return s.mostVoted(ctx)
	}

	ids := make([]uuid.UUID, 0, len(counts))
	recent := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		ids = append(ids, c.QuestionID)
		recent[c.QuestionID] = c.Count
	}

	questions, err := s.questionRepo.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	byID := make(map[uuid.UUID]*domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	board := make([]*domain.LeaderboardQuestion, 0, len(counts))
	for _, c := range counts {
		q, ok := byID[c.QuestionID]
		if !ok || q.Status != domain.StatusActive {
			continue
		}
		board = append(board, &domain.LeaderboardQuestion{
			Question:    *q,
			RecentVotes: c.Count,
		})
	}
	return board, nil
}

// controversial ranks active questions by how close to 50/50 their split
// is. Questions need a minimum of votes to qualify so a 1-1 split does not
// outrank a contested 500-498.
func (s *leaderboardService) controversial(ctx context.Context) ([]*domain.LeaderboardQuestion, error) {
	questions, err := s.questionRepo.ActiveWithMinVotes(ctx, controversialMinVote)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	board := make([]*domain.LeaderboardQuestion, 0, len(questions))
	for _, q := range questions {
		board = append(board, &domain.LeaderboardQuestion{
			Question:    *q,
			Controversy: Controversy(q.Options, q.TotalVotes),
		})
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Controversy > board[j].Controversy
	})

	if len(board) > leaderboardLimit {
		board = board[:leaderboardLimit]
	}
	return board, nil
}

func (s *leaderboardService) mostVoted(ctx context.Context) ([]*domain.LeaderboardQuestion, error) {
	questions, err := s.questionRepo.TopByVotes(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top questions: %w", err)
	}
	return plainBoard(questions), nil
}

func (s *leaderboardService) newest(ctx context.Context) ([]*domain.LeaderboardQuestion, error) {
	questions, err := s.questionRepo.Newest(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch newest questions: %w", err)
	}
	return plainBoard(questions), nil
}

func plainBoard(questions []*domain.Question) []*domain.LeaderboardQuestion {
	board := make([]*domain.LeaderboardQuestion, 0, len(questions))
	for _, q := range questions {
		board = append(board, &domain.LeaderboardQuestion{Question: *q})
	}
	return board
}
