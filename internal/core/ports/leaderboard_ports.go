package ports

import (
	"context"

	"github.com/versus/api/internal/core/domain"
)

// Leaderboard tabs.
const (
	LeaderboardHot           = "hot"
	LeaderboardControversial = "controversial"
	LeaderboardMostVoted     = "most-voted"
	LeaderboardNewest        = "newest"
)

type LeaderboardService interface {
	// Leaderboard returns the ranked questions for the given tab. An empty
	// tab means "hot". Unknown tabs fail with domain.ErrValidation.
	Leaderboard(ctx context.Context, tab string) ([]*domain.LeaderboardQuestion, error)
}
