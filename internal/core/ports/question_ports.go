package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
)

type QuestionRepository interface {
	Save(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	// ActiveUnseen returns every active question the session has no
	// impression for, options included and ordered. An empty result is not
	// an error.
	ActiveUnseen(ctx context.Context, sessionID string) ([]*domain.Question, error)
	// TopByVotes returns the most-voted active questions, options included.
	TopByVotes(ctx context.Context, limit int) ([]*domain.Question, error)
	// ActiveWithMinVotes returns active questions with at least minVotes
	// total votes, most-voted first, options included.
	ActiveWithMinVotes(ctx context.Context, minVotes int64) ([]*domain.Question, error)
	// Newest returns the most recently created active questions, options
	// included.
	Newest(ctx context.Context, limit int) ([]*domain.Question, error)
	// ByIDs returns the given questions, options included, in no
	// particular order. Unknown ids are silently absent.
	ByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Question, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type SubmitQuestionInput struct {
	Prompt       string
	Subtitle     string
	CategorySlug string
	OptionNames  []string
	SessionID    string
}

type QuestionService interface {
	Submit(ctx context.Context, input SubmitQuestionInput) (*domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	Results(ctx context.Context, id string) (*domain.QuestionResults, error)
	Categories(ctx context.Context) ([]*domain.Category, error)
}
