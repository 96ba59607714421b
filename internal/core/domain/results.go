package domain

import "github.com/google/uuid"

type OptionResult struct {
	OptionID   uuid.UUID `json:"option_id"`
	Name       string    `json:"name"`
	Subtitle   string    `json:"subtitle,omitempty"`
	VoteCount  int64     `json:"vote_count"`
	Percentage int       `json:"percentage"`
	IsWinner   bool      `json:"is_winner"`
	IsUserVote bool      `json:"is_user_vote"`
}

type QuestionResults struct {
	QuestionID uuid.UUID      `json:"question_id"`
	Prompt     string         `json:"prompt"`
	TotalVotes int64          `json:"total_votes"`
	Results    []OptionResult `json:"results"`
}
