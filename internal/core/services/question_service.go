package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

const (
	maxPromptLength = 200
	minOptions      = 2
	maxOptions      = 4
)

type questionService struct {
	questionRepo ports.QuestionRepository
	categoryRepo ports.CategoryRepository
}

func NewQuestionService(questionRepo ports.QuestionRepository, categoryRepo ports.CategoryRepository) ports.QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
	}
}

// Submit creates a draft question from a session submission. Drafts only
// enter the feed once an operator flips them to active.
func (s *questionService) Submit(ctx context.Context, input ports.SubmitQuestionInput) (*domain.Question, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	if len(prompt) > maxPromptLength {
		return nil, fmt.Errorf("%w: prompt must be %d characters or less", domain.ErrValidation, maxPromptLength)
	}
	if input.CategorySlug == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if len(input.OptionNames) > maxOptions {
		return nil, fmt.Errorf("%w: maximum %d options allowed", domain.ErrValidation, maxOptions)
	}

	var names []string
	for _, name := range input.OptionNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) < minOptions {
		return nil, fmt.Errorf("%w: at least %d options are required", domain.ErrValidation, minOptions)
	}

	category, err := s.categoryRepo.GetBySlug(ctx, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	questionID := uuid.New()
	now := time.Now().UTC()

	question := &domain.Question{
		ID:         questionID,
		CategoryID: category.ID,
		Prompt:     prompt,
		Subtitle:   strings.TrimSpace(input.Subtitle),
		Status:     domain.StatusDraft,
		Metadata:   map[string]any{"submitted_by": input.SessionID},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for i, name := range names {
		question.Options = append(question.Options, domain.Option{
			ID:         uuid.New(),
			QuestionID: questionID,
			Name:       name,
			SortOrder:  i,
			CreatedAt:  now,
		})
	}

	if err := s.questionRepo.Save(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *questionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}
	return s.questionRepo.GetByID(ctx, questionID)
}

// Results returns the current per-option percentages without requiring a
// vote from the caller.
func (s *questionService) Results(ctx context.Context, id string) (*domain.QuestionResults, error) {
	question, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildResults(question, uuid.Nil), nil
}

func (s *questionService) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}
