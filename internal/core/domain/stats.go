package domain

import (
	"time"

	"github.com/google/uuid"
)

type StreakInfo struct {
	Streak     int  `json:"streak"`
	VotedToday bool `json:"voted_today"`
}

type SessionStats struct {
	TotalVotes       int64  `json:"total_votes"`
	FavoriteCategory string `json:"favorite_category,omitempty"`
	AgreementRate    int    `json:"agreement_rate"`
	QuestionsSkipped int64  `json:"questions_skipped"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Unlocked    bool   `json:"unlocked"`
	Progress    string `json:"progress,omitempty"`
}

type AchievementSummary struct {
	Achievements  []Achievement `json:"achievements"`
	UnlockedCount int           `json:"unlocked_count"`
	TotalCount    int           `json:"total_count"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
	Count int64  `json:"count"`
}

type UpsetVote struct {
	Prompt     string `json:"prompt"`
	Percentage int    `json:"percentage"`
}

// Recap is the session's shareable summary. It unlocks once the session has
// cast enough votes to say something meaningful.
type Recap struct {
	Unlocked         bool            `json:"unlocked"`
	TotalVotes       int64           `json:"total_votes"`
	MinRequired      int64           `json:"min_required,omitempty"`
	AgreementRate    int             `json:"agreement_rate,omitempty"`
	Personality      string          `json:"personality,omitempty"`
	PersonalityEmoji string          `json:"personality_emoji,omitempty"`
	PersonalityDesc  string          `json:"personality_desc,omitempty"`
	TopCategories    []CategoryCount `json:"top_categories,omitempty"`
	BiggestUpset     *UpsetVote      `json:"biggest_upset,omitempty"`
}

// VoteHistoryEntry is one past vote of a session, shown with the current
// outcome of the question rather than the outcome at vote time.
type VoteHistoryEntry struct {
	QuestionID       uuid.UUID `json:"question_id"`
	Prompt           string    `json:"prompt"`
	CategoryName     string    `json:"category_name"`
	VotedOptionName  string    `json:"voted_option_name"`
	WinnerName       string    `json:"winner_name"`
	WinnerPercentage int       `json:"winner_percentage"`
	TotalVotes       int64     `json:"total_votes"`
	VotedAt          time.Time `json:"voted_at"`
}

// VoteHistory is a cursor-paged slice of the session's vote ledger, most
// recent first. NextCursor is nil on the last page.
type VoteHistory struct {
	Votes      []VoteHistoryEntry `json:"votes"`
	NextCursor *time.Time         `json:"next_cursor"`
}

type FeaturedQuestion struct {
	ID               uuid.UUID `json:"id"`
	Prompt           string    `json:"prompt"`
	CategoryName     string    `json:"category_name"`
	TotalVotes       int64     `json:"total_votes"`
	WinnerName       string    `json:"winner_name,omitempty"`
	WinnerPercentage int       `json:"winner_percentage"`
}
