package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveVote records a vote in a single transaction: insert the vote row,
// bump the option and question counters relatively, and upsert the
// impression as "voted". The unique constraint on (question_id, session_id)
// is the authoritative duplicate signal; its violation is returned as
// domain.ErrAlreadyVoted no matter which statement trips it.
func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryVote := `
		INSERT INTO votes (id, question_id, option_id, session_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, queryVote, vote.ID, vote.QuestionID, vote.OptionID, vote.SessionID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	queryOption := `
		UPDATE options SET vote_count = vote_count + 1
		WHERE id = $1 AND question_id = $2
	`
	res, err := tx.ExecContext(ctx, queryOption, vote.OptionID, vote.QuestionID)
	if err != nil {
		return fmt.Errorf("failed to increment option count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected != 1 {
		return domain.ErrInvalidOption
	}

	queryQuestion := `
		UPDATE questions SET total_votes = total_votes + 1, updated_at = NOW()
		WHERE id = $1
	`
	if _, err = tx.ExecContext(ctx, queryQuestion, vote.QuestionID); err != nil {
		return fmt.Errorf("failed to increment question total: %w", err)
	}

	queryImpression := `
		INSERT INTO impressions (id, question_id, session_id, action)
		VALUES ($1, $2, $3, 'voted')
		ON CONFLICT (question_id, session_id) DO UPDATE SET action = 'voted'
	`
	if _, err = tx.ExecContext(ctx, queryImpression, uuid.New(), vote.QuestionID, vote.SessionID); err != nil {
		return fmt.Errorf("failed to upsert impression: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *voteRepository) CountsSince(ctx context.Context, since time.Time, limit int) ([]ports.QuestionVoteCount, error) {
	query := `
		SELECT question_id, COUNT(*)
		FROM votes
		WHERE created_at > $1
		GROUP BY question_id
		ORDER BY COUNT(*) DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent votes: %w", err)
	}
	defer rows.Close()

	var counts []ports.QuestionVoteCount
	for rows.Next() {
		var c ports.QuestionVoteCount
		if err := rows.Scan(&c.QuestionID, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}

func (r *voteRepository) HasVoted(ctx context.Context, questionID uuid.UUID, sessionID string) (bool, error) {
	query := `SELECT 1 FROM votes WHERE question_id = $1 AND session_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, questionID, sessionID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) VoteForSession(ctx context.Context, questionID uuid.UUID, sessionID string) (*domain.Vote, error) {
	query := `
		SELECT id, question_id, option_id, session_id, created_at
		FROM votes
		WHERE question_id = $1 AND session_id = $2
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, questionID, sessionID).Scan(
		&vote.ID, &vote.QuestionID, &vote.OptionID, &vote.SessionID, &vote.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}
