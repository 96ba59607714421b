package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type achievementService struct {
	statsRepo ports.StatsRepository
	now       func() time.Time
}

func NewAchievementService(statsRepo ports.StatsRepository) ports.AchievementService {
	return &achievementService{
		statsRepo: statsRepo,
		now:       time.Now,
	}
}

// Achievements evaluates the fixed catalogue of threshold predicates over
// the session's aggregate counters.
func (s *achievementService) Achievements(ctx context.Context, sessionID string) (*domain.AchievementSummary, error) {
	totalVotes, err := s.statsRepo.CountVotes(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	categoriesVoted, err := s.statsRepo.DistinctCategoriesVoted(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voted categories: %w", err)
	}

	totalCategories, err := s.statsRepo.CountCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	days, err := s.statsRepo.VoteDays(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote days: %w", err)
	}
	streak := streakFromDays(days, dateOnly(s.now().UTC()))

	maxDailyVotes, err := s.statsRepo.MaxVotesInOneDay(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch max daily votes: %w", err)
	}

	skips, err := s.statsRepo.CountSkips(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count skips: %w", err)
	}

	contrarian, err := s.contrarianCount(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	achievements := []domain.Achievement{
		{
			ID:          "first-vote",
			Name:        "First Vote",
			Description: "Cast your first vote",
			Emoji:       "🗳️",
			Unlocked:    totalVotes >= 1,
		},
		{
			ID:          "ten-votes",
			Name:        "Regular",
			Description: "Cast 10 votes",
			Emoji:       "🔟",
			Unlocked:    totalVotes >= 10,
			Progress:    progress(totalVotes, 10, ""),
		},
		{
			ID:          "fifty-votes",
			Name:        "Dedicated Voter",
			Description: "Cast 50 votes",
			Emoji:       "⭐",
			Unlocked:    totalVotes >= 50,
			Progress:    progress(totalVotes, 50, ""),
		},
		{
			ID:          "hundred-votes",
			Name:        "Centurion",
			Description: "Cast 100 votes",
			Emoji:       "💯",
			Unlocked:    totalVotes >= 100,
			Progress:    progress(totalVotes, 100, ""),
		},
		{
			ID:          "speed-voter",
			Name:        "Speed Voter",
			Description: "Cast 10 votes in a single day",
			Emoji:       "⚡",
			Unlocked:    maxDailyVotes >= 10,
			Progress:    progress(maxDailyVotes, 10, "Best: "),
		},
		{
			ID:          "explorer",
			Name:        "Explorer",
			Description: "Vote in every category",
			Emoji:       "🧭",
			Unlocked:    totalCategories > 0 && categoriesVoted >= totalCategories,
			Progress:    progress(categoriesVoted, totalCategories, ""),
		},
		{
			ID:          "streak-3",
			Name:        "On a Roll",
			Description: "3-day voting streak",
			Emoji:       "🔥",
			Unlocked:    streak >= 3,
			Progress:    daysProgress(streak, 3),
		},
		{
			ID:          "streak-7",
			Name:        "Streak Master",
			Description: "7-day voting streak",
			Emoji:       "🏆",
			Unlocked:    streak >= 7,
			Progress:    daysProgress(streak, 7),
		},
		{
			ID:          "contrarian-5",
			Name:        "Contrarian",
			Description: "Disagree with the majority 5 times",
			Emoji:       "🤷",
			Unlocked:    contrarian >= 5,
			Progress:    progress(contrarian, 5, ""),
		},
		{
			ID:          "contrarian-20",
			Name:        "Rebel",
			Description: "Disagree with the majority 20 times",
			Emoji:       "✊",
			Unlocked:    contrarian >= 20,
			Progress:    progress(contrarian, 20, ""),
		},
		{
			ID:          "skip-master",
			Name:        "Picky Voter",
			Description: "Skip 10 questions",
			Emoji:       "🙅",
			Unlocked:    skips >= 10,
			Progress:    progress(skips, 10, ""),
		},
	}

	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked {
			unlocked++
		}
	}

	return &domain.AchievementSummary{
		Achievements:  achievements,
		UnlockedCount: unlocked,
		TotalCount:    len(achievements),
	}, nil
}

// contrarianCount is how many times the session voted against the current
// majority option.
func (s *achievementService) contrarianCount(ctx context.Context, sessionID string) (int64, error) {
	votes, err := s.statsRepo.SessionVotes(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch session votes: %w", err)
	}
	if len(votes) == 0 {
		return 0, nil
	}

	questionIDs := make([]uuid.UUID, 0, len(votes))
	for _, v := range votes {
		questionIDs = append(questionIDs, v.QuestionID)
	}

	options, err := s.statsRepo.OptionsForQuestions(ctx, questionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch options: %w", err)
	}

	winners := winnersByQuestion(options)
	var count int64
	for _, v := range votes {
		if winners[v.QuestionID] != v.OptionID {
			count++
		}
	}
	return count, nil
}

// progress renders "{current}/{threshold}" while locked, empty once reached.
func progress[T int | int64](current, threshold T, prefix string) string {
	if current >= threshold {
		return ""
	}
	return fmt.Sprintf("%s%d/%d", prefix, current, threshold)
}

func daysProgress(current, threshold int) string {
	if current >= threshold {
		return ""
	}
	return fmt.Sprintf("%d/%d days", current, threshold)
}
