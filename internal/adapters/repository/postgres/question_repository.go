package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) ports.QuestionRepository {
	return &questionRepository{
		db: db,
	}
}

const questionColumns = `
	q.id, q.category_id, c.name, c.slug, q.prompt, COALESCE(q.subtitle, ''),
	q.status, q.tags, q.total_votes, q.metadata, q.created_at, q.updated_at
`

func (r *questionRepository) Save(ctx context.Context, question *domain.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var metadata []byte
	if question.Metadata != nil {
		metadata, err = json.Marshal(question.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	queryQuestion := `
		INSERT INTO questions (id, category_id, prompt, subtitle, status, tags, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, queryQuestion,
		question.ID, question.CategoryID, question.Prompt, nullString(question.Subtitle),
		question.Status, pq.Array(question.Tags), metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}

	queryOption := `
		INSERT INTO options (id, question_id, name, subtitle, sort_order)
		VALUES ($1, $2, $3, $4, $5)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for _, opt := range question.Options {
		_, err = stmt.ExecContext(ctx, opt.ID, opt.QuestionID, opt.Name, nullString(opt.Subtitle), opt.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		INNER JOIN categories c ON q.category_id = c.id
		WHERE q.id = $1
	`

	question, err := r.scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if err := r.attachOptions(ctx, []*domain.Question{question}); err != nil {
		return nil, err
	}

	return question, nil
}

func (r *questionRepository) ActiveUnseen(ctx context.Context, sessionID string) ([]*domain.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		INNER JOIN categories c ON q.category_id = c.id
		WHERE q.status = 'active'
		  AND NOT EXISTS (
			SELECT 1 FROM impressions i
			WHERE i.question_id = q.id AND i.session_id = $1
		  )
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unseen questions: %w", err)
	}
	defer rows.Close()

	return r.scanQuestions(ctx, rows)
}

func (r *questionRepository) TopByVotes(ctx context.Context, limit int) ([]*domain.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		INNER JOIN categories c ON q.category_id = c.id
		WHERE q.status = 'active'
		ORDER BY q.total_votes DESC, q.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top questions: %w", err)
	}
	defer rows.Close()

	return r.scanQuestions(ctx, rows)
}

func (r *questionRepository) ActiveWithMinVotes(ctx context.Context, minVotes int64) ([]*domain.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		INNER JOIN categories c ON q.category_id = c.id
		WHERE q.status = 'active' AND q.total_votes >= $1
		ORDER BY q.total_votes DESC, q.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, minVotes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch voted questions: %w", err)
	}
	defer rows.Close()

	return r.scanQuestions(ctx, rows)
}

func (r *questionRepository) Newest(ctx context.Context, limit int) ([]*domain.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		INNER JOIN categories c ON q.category_id = c.id
		WHERE q.status = 'active'
		ORDER BY q.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch newest questions: %w", err)
	}
	defer rows.Close()

	return r.scanQuestions(ctx, rows)
}

func (r *questionRepository) ByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		INNER JOIN categories c ON q.category_id = c.id
		WHERE q.id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	defer rows.Close()

	return r.scanQuestions(ctx, rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *questionRepository) scanQuestion(row rowScanner) (*domain.Question, error) {
	var (
		question domain.Question
		tags     pq.StringArray
		metadata []byte
	)
	err := row.Scan(
		&question.ID, &question.CategoryID, &question.CategoryName, &question.CategorySlug,
		&question.Prompt, &question.Subtitle, &question.Status, &tags,
		&question.TotalVotes, &metadata, &question.CreatedAt, &question.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	question.Tags = tags
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &question.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &question, nil
}

func (r *questionRepository) scanQuestions(ctx context.Context, rows *sql.Rows) ([]*domain.Question, error) {
	var questions []*domain.Question
	for rows.Next() {
		question, err := r.scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	if err := r.attachOptions(ctx, questions); err != nil {
		return nil, err
	}

	return questions, nil
}

// attachOptions loads the options for all given questions in one round trip
// and attaches them in display order.
func (r *questionRepository) attachOptions(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(questions))
	byID := make(map[uuid.UUID]*domain.Question, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
		byID[q.ID] = q
	}

	query := `
		SELECT id, question_id, name, COALESCE(subtitle, ''), sort_order, vote_count, created_at
		FROM options
		WHERE question_id = ANY($1)
		ORDER BY question_id, sort_order
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Name, &opt.Subtitle, &opt.SortOrder, &opt.VoteCount, &opt.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		if q, ok := byID[opt.QuestionID]; ok {
			q.Options = append(q.Options, opt)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating options: %w", err)
	}

	return nil
}
