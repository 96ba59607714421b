package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
)

type StatsRepository interface {
	// VoteDays returns the distinct UTC calendar days the session voted on,
	// most recent first.
	VoteDays(ctx context.Context, sessionID string) ([]time.Time, error)
	SessionVotes(ctx context.Context, sessionID string) ([]*domain.Vote, error)
	// OptionsForQuestions returns the current options, counts included, for
	// the given questions in one round trip.
	OptionsForQuestions(ctx context.Context, questionIDs []uuid.UUID) ([]domain.Option, error)
	CountVotes(ctx context.Context, sessionID string) (int64, error)
	CountSkips(ctx context.Context, sessionID string) (int64, error)
	FavoriteCategory(ctx context.Context, sessionID string) (string, error)
	DistinctCategoriesVoted(ctx context.Context, sessionID string) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	MaxVotesInOneDay(ctx context.Context, sessionID string) (int64, error)
	TopCategories(ctx context.Context, sessionID string, limit int) ([]domain.CategoryCount, error)
	// VotesBefore returns the session's votes cast strictly before the
	// cursor, most recent first, capped at limit. A zero cursor means no
	// lower bound.
	VotesBefore(ctx context.Context, sessionID string, before time.Time, limit int) ([]*domain.Vote, error)
}

type StatsService interface {
	Streak(ctx context.Context, sessionID string) (*domain.StreakInfo, error)
	Stats(ctx context.Context, sessionID string) (*domain.SessionStats, error)
	Recap(ctx context.Context, sessionID string) (*domain.Recap, error)
	// History pages through the session's past votes, most recent first.
	// A zero cursor starts at the newest vote.
	History(ctx context.Context, sessionID string, cursor time.Time) (*domain.VoteHistory, error)
}

type AchievementService interface {
	Achievements(ctx context.Context, sessionID string) (*domain.AchievementSummary, error)
}

type FeaturedService interface {
	Featured(ctx context.Context) (*domain.FeaturedQuestion, error)
}
