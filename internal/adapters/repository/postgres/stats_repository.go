package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) ports.StatsRepository {
	return &statsRepository{
		db: db,
	}
}

func (r *statsRepository) VoteDays(ctx context.Context, sessionID string) ([]time.Time, error) {
	query := `
		SELECT DATE(created_at AT TIME ZONE 'UTC') AS day
		FROM votes
		WHERE session_id = $1
		GROUP BY day
		ORDER BY day DESC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan vote day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote days: %w", err)
	}
	return days, nil
}

func (r *statsRepository) SessionVotes(ctx context.Context, sessionID string) ([]*domain.Vote, error) {
	query := `
		SELECT id, question_id, option_id, session_id, created_at
		FROM votes
		WHERE session_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.QuestionID, &vote.OptionID, &vote.SessionID, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *statsRepository) OptionsForQuestions(ctx context.Context, questionIDs []uuid.UUID) ([]domain.Option, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, question_id, name, COALESCE(subtitle, ''), sort_order, vote_count, created_at
		FROM options
		WHERE question_id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(questionIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch options: %w", err)
	}
	defer rows.Close()

	var options []domain.Option
	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Name, &opt.Subtitle, &opt.SortOrder, &opt.VoteCount, &opt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

func (r *statsRepository) VotesBefore(ctx context.Context, sessionID string, before time.Time, limit int) ([]*domain.Vote, error) {
	query := `
		SELECT id, question_id, option_id, session_id, created_at
		FROM votes
		WHERE session_id = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC
		LIMIT $3
	`
	var cursor sql.NullTime
	if !before.IsZero() {
		cursor = sql.NullTime{Time: before, Valid: true}
	}
	rows, err := r.db.QueryContext(ctx, query, sessionID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote history: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.QuestionID, &vote.OptionID, &vote.SessionID, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote history: %w", err)
	}
	return votes, nil
}

func (r *statsRepository) CountVotes(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE session_id = $1`, sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (r *statsRepository) CountSkips(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM impressions WHERE session_id = $1 AND action = 'skipped'`, sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count skips: %w", err)
	}
	return count, nil
}

func (r *statsRepository) FavoriteCategory(ctx context.Context, sessionID string) (string, error) {
	query := `
		SELECT c.name
		FROM votes v
		INNER JOIN questions q ON v.question_id = q.id
		INNER JOIN categories c ON q.category_id = c.id
		WHERE v.session_id = $1
		GROUP BY c.name
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`
	var name string
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch favorite category: %w", err)
	}
	return name, nil
}

func (r *statsRepository) DistinctCategoriesVoted(ctx context.Context, sessionID string) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT q.category_id)
		FROM votes v
		INNER JOIN questions q ON v.question_id = q.id
		WHERE v.session_id = $1
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count voted categories: %w", err)
	}
	return count, nil
}

func (r *statsRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func (r *statsRepository) MaxVotesInOneDay(ctx context.Context, sessionID string) (int64, error) {
	query := `
		SELECT COALESCE(MAX(cnt), 0) FROM (
			SELECT COUNT(*) AS cnt
			FROM votes
			WHERE session_id = $1
			GROUP BY DATE(created_at AT TIME ZONE 'UTC')
		) daily
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to fetch max daily votes: %w", err)
	}
	return count, nil
}

func (r *statsRepository) TopCategories(ctx context.Context, sessionID string, limit int) ([]domain.CategoryCount, error) {
	query := `
		SELECT c.name, COALESCE(c.icon_emoji, ''), COUNT(*)
		FROM votes v
		INNER JOIN questions q ON v.question_id = q.id
		INNER JOIN categories c ON q.category_id = c.id
		WHERE v.session_id = $1
		GROUP BY c.name, c.icon_emoji
		ORDER BY COUNT(*) DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top categories: %w", err)
	}
	defer rows.Close()

	var counts []domain.CategoryCount
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Name, &c.Emoji, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}
	return counts, nil
}
