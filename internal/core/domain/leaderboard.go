package domain

// LeaderboardQuestion is a question enriched with the ranking signal that
// put it on the board. Controversy is set on the controversial tab,
// RecentVotes on the hot tab.
type LeaderboardQuestion struct {
	Question
	Controversy float64 `json:"controversy,omitempty"`
	RecentVotes int64   `json:"recent_votes,omitempty"`
}
