package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

const (
	recapMinVotes         = 5
	recapTopCategories    = 5
	upsetMaxPercentage    = 40
	upsetMinQuestionVotes = 3
	historyPageSize       = 20
)

type statsService struct {
	statsRepo    ports.StatsRepository
	questionRepo ports.QuestionRepository
	now          func() time.Time
}

func NewStatsService(statsRepo ports.StatsRepository, questionRepo ports.QuestionRepository) ports.StatsService {
	return &statsService{
		statsRepo:    statsRepo,
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

// Streak counts consecutive UTC calendar days with at least one vote,
// walking backward from the most recent day. The streak is live only when
// the most recent vote day is today or yesterday.
func (s *statsService) Streak(ctx context.Context, sessionID string) (*domain.StreakInfo, error) {
	days, err := s.statsRepo.VoteDays(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote days: %w", err)
	}
	if len(days) == 0 {
		return &domain.StreakInfo{}, nil
	}

	today := dateOnly(s.now().UTC())
	votedToday := dateOnly(days[0]).Equal(today)

	return &domain.StreakInfo{
		Streak:     streakFromDays(days, today),
		VotedToday: votedToday,
	}, nil
}

func (s *statsService) Stats(ctx context.Context, sessionID string) (*domain.SessionStats, error) {
	totalVotes, err := s.statsRepo.CountVotes(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	if totalVotes == 0 {
		return &domain.SessionStats{}, nil
	}

	favorite, err := s.statsRepo.FavoriteCategory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorite category: %w", err)
	}

	agreementRate, _, err := s.agreementRate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	skipped, err := s.statsRepo.CountSkips(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count skips: %w", err)
	}

	return &domain.SessionStats{
		TotalVotes:       totalVotes,
		FavoriteCategory: favorite,
		AgreementRate:    agreementRate,
		QuestionsSkipped: skipped,
	}, nil
}

// Recap is the session's shareable summary: agreement rate, a personality
// tier derived from it, top categories and the biggest upset vote. Unlocks
// at five votes.
func (s *statsService) Recap(ctx context.Context, sessionID string) (*domain.Recap, error) {
	votes, err := s.statsRepo.SessionVotes(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session votes: %w", err)
	}

	totalVotes := int64(len(votes))
	if totalVotes < recapMinVotes {
		return &domain.Recap{
			Unlocked:    false,
			TotalVotes:  totalVotes,
			MinRequired: recapMinVotes,
		}, nil
	}

	questionIDs := make([]uuid.UUID, 0, len(votes))
	for _, v := range votes {
		questionIDs = append(questionIDs, v.QuestionID)
	}

	options, err := s.statsRepo.OptionsForQuestions(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch options: %w", err)
	}

	winners := winnersByQuestion(options)
	agreements := 0
	for _, v := range votes {
		if winners[v.QuestionID] == v.OptionID {
			agreements++
		}
	}
	agreementRate := int(math.Round(float64(agreements) / float64(totalVotes) * 100))

	personality, personalityEmoji, personalityDesc := personalityFor(agreementRate)

	topCategories, err := s.statsRepo.TopCategories(ctx, sessionID, recapTopCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top categories: %w", err)
	}

	upset, err := s.biggestUpset(ctx, votes, options)
	if err != nil {
		return nil, err
	}

	return &domain.Recap{
		Unlocked:         true,
		TotalVotes:       totalVotes,
		AgreementRate:    agreementRate,
		Personality:      personality,
		PersonalityEmoji: personalityEmoji,
		PersonalityDesc:  personalityDesc,
		TopCategories:    topCategories,
		BiggestUpset:     upset,
	}, nil
}

// History pages through the session's vote ledger, most recent first. One
// extra row is fetched to decide whether another page exists; the cursor is
// the timestamp of the last entry on the page.
func (s *statsService) History(ctx context.Context, sessionID string, cursor time.Time) (*domain.VoteHistory, error) {
	votes, err := s.statsRepo.VotesBefore(ctx, sessionID, cursor, historyPageSize+1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote history: %w", err)
	}

	hasMore := len(votes) > historyPageSize
	if hasMore {
		votes = votes[:historyPageSize]
	}
	if len(votes) == 0 {
		return &domain.VoteHistory{Votes: []domain.VoteHistoryEntry{}}, nil
	}

	questionIDs := make([]uuid.UUID, 0, len(votes))
	for _, v := range votes {
		questionIDs = append(questionIDs, v.QuestionID)
	}

	questions, err := s.questionRepo.ByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	entries := make([]domain.VoteHistoryEntry, 0, len(votes))
	for _, v := range votes {
		q, ok := byID[v.QuestionID]
		if !ok {
			continue
		}
		entries = append(entries, historyEntry(v, q))
	}

	history := &domain.VoteHistory{Votes: entries}
	if hasMore {
		last := votes[len(votes)-1].CreatedAt
		history.NextCursor = &last
	}
	return history, nil
}

// historyEntry pairs the session's pick with the question's current winner.
func historyEntry(v *domain.Vote, q *domain.Question) domain.VoteHistoryEntry {
	entry := domain.VoteHistoryEntry{
		QuestionID:   q.ID,
		Prompt:       q.Prompt,
		CategoryName: q.CategoryName,
		TotalVotes:   q.TotalVotes,
		VotedAt:      v.CreatedAt,
	}

	var winner *domain.Option
	for i := range q.Options {
		o := &q.Options[i]
		if o.ID == v.OptionID {
			entry.VotedOptionName = o.Name
		}
		if winner == nil || o.VoteCount > winner.VoteCount {
			winner = o
		}
	}
	if winner != nil && q.TotalVotes > 0 {
		entry.WinnerName = winner.Name
		entry.WinnerPercentage = int(math.Round(float64(winner.VoteCount) / float64(q.TotalVotes) * 100))
	}
	return entry
}

func (s *statsService) agreementRate(ctx context.Context, sessionID string) (int, []*domain.Vote, error) {
	votes, err := s.statsRepo.SessionVotes(ctx, sessionID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to fetch session votes: %w", err)
	}
	if len(votes) == 0 {
		return 0, votes, nil
	}

	questionIDs := make([]uuid.UUID, 0, len(votes))
	for _, v := range votes {
		questionIDs = append(questionIDs, v.QuestionID)
	}

	options, err := s.statsRepo.OptionsForQuestions(ctx, questionIDs)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to fetch options: %w", err)
	}

	winners := winnersByQuestion(options)
	agreements := 0
	for _, v := range votes {
		if winners[v.QuestionID] == v.OptionID {
			agreements++
		}
	}

	return int(math.Round(float64(agreements) / float64(len(votes)) * 100)), votes, nil
}

// biggestUpset finds the vote where the session backed the least popular
// side: the lowest current percentage among the session's picks, reported
// only when it stayed under 40%.
func (s *statsService) biggestUpset(ctx context.Context, votes []*domain.Vote, options []domain.Option) (*domain.UpsetVote, error) {
	optionsByQuestion := make(map[uuid.UUID][]domain.Option)
	for _, o := range options {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], o)
	}

	var (
		upsetQuestionID uuid.UUID
		upsetPct        = -1
	)
	for _, v := range votes {
		opts := optionsByQuestion[v.QuestionID]
		if len(opts) < 2 {
			continue
		}
		var total int64
		for _, o := range opts {
			total += o.VoteCount
		}
		if total < upsetMinQuestionVotes {
			continue
		}
		var voted *domain.Option
		for i := range opts {
			if opts[i].ID == v.OptionID {
				voted = &opts[i]
				break
			}
		}
		if voted == nil {
			continue
		}
		pct := int(math.Round(float64(voted.VoteCount) / float64(total) * 100))
		if upsetPct < 0 || pct < upsetPct {
			upsetPct = pct
			upsetQuestionID = v.QuestionID
		}
	}

	if upsetPct < 0 || upsetPct >= upsetMaxPercentage {
		return nil, nil
	}

	question, err := s.questionRepo.GetByID(ctx, upsetQuestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upset question: %w", err)
	}

	return &domain.UpsetVote{
		Prompt:     question.Prompt,
		Percentage: upsetPct,
	}, nil
}

func personalityFor(agreementRate int) (name, emoji, description string) {
	switch {
	case agreementRate >= 75:
		return "The Crowd Surfer", "🏄", "You ride the wave of popular opinion. The people's champion."
	case agreementRate >= 55:
		return "The Moderate", "⚖️", "Sometimes with the crowd, sometimes against. Balanced takes."
	case agreementRate >= 35:
		return "The Contrarian", "🎭", "You see what others don't. Your hot takes run hot."
	default:
		return "The Rebel", "🔥", "You consistently go against the grain. A true original."
	}
}

// winnersByQuestion picks the option with the highest current count per
// question. The winner is recomputed live, not frozen at vote time.
func winnersByQuestion(options []domain.Option) map[uuid.UUID]uuid.UUID {
	winners := make(map[uuid.UUID]uuid.UUID)
	maxCounts := make(map[uuid.UUID]int64)
	for _, o := range options {
		current, ok := maxCounts[o.QuestionID]
		if !ok || o.VoteCount > current {
			maxCounts[o.QuestionID] = o.VoteCount
			winners[o.QuestionID] = o.ID
		}
	}
	return winners
}

// streakFromDays walks the distinct vote days (most recent first) counting
// consecutive days with no gap. today must be a UTC midnight.
func streakFromDays(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	yesterday := today.AddDate(0, 0, -1)
	mostRecent := dateOnly(days[0])
	if !mostRecent.Equal(today) && !mostRecent.Equal(yesterday) {
		return 0
	}

	streak := 0
	expected := mostRecent
	for _, d := range days {
		if !dateOnly(d).Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
