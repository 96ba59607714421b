package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type reactionRepository struct {
	db *sql.DB
}

func NewReactionRepository(db *sql.DB) ports.ReactionRepository {
	return &reactionRepository{
		db: db,
	}
}

func (r *reactionRepository) Upsert(ctx context.Context, reaction *domain.Reaction) error {
	query := `
		INSERT INTO reactions (id, question_id, session_id, emoji)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id, session_id) DO UPDATE SET emoji = EXCLUDED.emoji, created_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, reaction.ID, reaction.QuestionID, reaction.SessionID, reaction.Emoji)
	if err != nil {
		return fmt.Errorf("failed to upsert reaction: %w", err)
	}
	return nil
}

func (r *reactionRepository) Counts(ctx context.Context, questionID uuid.UUID) (map[string]int64, error) {
	query := `SELECT emoji, COUNT(*) FROM reactions WHERE question_id = $1 GROUP BY emoji`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reaction counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			emoji string
			count int64
		)
		if err := rows.Scan(&emoji, &count); err != nil {
			return nil, fmt.Errorf("failed to scan reaction count: %w", err)
		}
		counts[emoji] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction counts: %w", err)
	}
	return counts, nil
}

func (r *reactionRepository) EmojiForSession(ctx context.Context, questionID uuid.UUID, sessionID string) (string, error) {
	query := `SELECT emoji FROM reactions WHERE question_id = $1 AND session_id = $2`
	var emoji string
	err := r.db.QueryRowContext(ctx, query, questionID, sessionID).Scan(&emoji)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch session reaction: %w", err)
	}
	return emoji, nil
}
