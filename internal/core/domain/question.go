package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuestionStatus string

const (
	StatusDraft    QuestionStatus = "draft"
	StatusActive   QuestionStatus = "active"
	StatusArchived QuestionStatus = "archived"
)

// Question is a single matchup shown to sessions for voting. TotalVotes is
// maintained by the vote transaction and always equals the sum of the
// options' vote counts. CategoryName and CategorySlug are denormalized from
// the category join on read paths; they are not persisted on the question
// row.
type Question struct {
	ID           uuid.UUID      `json:"id"`
	CategoryID   uuid.UUID      `json:"category_id"`
	CategoryName string         `json:"category_name,omitempty"`
	CategorySlug string         `json:"category_slug,omitempty"`
	Prompt       string         `json:"prompt"`
	Subtitle     string         `json:"subtitle,omitempty"`
	Status       QuestionStatus `json:"status"`
	Tags         []string       `json:"tags,omitempty"`
	TotalVotes   int64          `json:"total_votes"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Options      []Option       `json:"options"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type Option struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Name       string    `json:"name"`
	Subtitle   string    `json:"subtitle,omitempty"`
	SortOrder  int       `json:"sort_order"`
	VoteCount  int64     `json:"vote_count"`
	CreatedAt  time.Time `json:"created_at"`
}
