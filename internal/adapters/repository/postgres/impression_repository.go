package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type impressionRepository struct {
	db *sql.DB
}

func NewImpressionRepository(db *sql.DB) ports.ImpressionRepository {
	return &impressionRepository{
		db: db,
	}
}

// Record upserts the (question, session) impression in one statement, so a
// racing "shown" and "skipped" cannot produce duplicate rows. A row already
// marked "voted" keeps its action.
func (r *impressionRepository) Record(ctx context.Context, questionID uuid.UUID, sessionID string, action domain.ImpressionAction) error {
	query := `
		INSERT INTO impressions (id, question_id, session_id, action)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id, session_id) DO UPDATE SET action = EXCLUDED.action
		WHERE impressions.action <> 'voted'
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), questionID, sessionID, action)
	if err != nil {
		return fmt.Errorf("failed to upsert impression: %w", err)
	}
	return nil
}
