package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

func testCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: map[string]*domain.Category{
			"food": {ID: uuid.New(), Name: "Food", Slug: "food"},
		},
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionRepo{}, testCategoryRepo())

	tests := []struct {
		name  string
		input ports.SubmitQuestionInput
	}{
		{
			name:  "empty prompt",
			input: ports.SubmitQuestionInput{CategorySlug: "food", OptionNames: []string{"A", "B"}},
		},
		{
			name: "prompt too long",
			input: ports.SubmitQuestionInput{
				Prompt:       strings.Repeat("a", maxPromptLength+1),
				CategorySlug: "food",
				OptionNames:  []string{"A", "B"},
			},
		},
		{
			name:  "missing category",
			input: ports.SubmitQuestionInput{Prompt: "A vs B", OptionNames: []string{"A", "B"}},
		},
		{
			name:  "too few options",
			input: ports.SubmitQuestionInput{Prompt: "A vs B", CategorySlug: "food", OptionNames: []string{"A"}},
		},
		{
			name: "too many options",
			input: ports.SubmitQuestionInput{
				Prompt:       "A vs B",
				CategorySlug: "food",
				OptionNames:  []string{"A", "B", "C", "D", "E"},
			},
		},
		{
			name: "blank options do not count",
			input: ports.SubmitQuestionInput{
				Prompt:       "A vs B",
				CategorySlug: "food",
				OptionNames:  []string{"A", "   "},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSubmitUnknownCategory(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionRepo{}, testCategoryRepo())

	_, err := svc.Submit(context.Background(), ports.SubmitQuestionInput{
		Prompt:       "A vs B",
		CategorySlug: "missing",
		OptionNames:  []string{"A", "B"},
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestSubmitCreatesDraft(t *testing.T) {
	questionRepo := &fakeQuestionRepo{}
	svc := NewQuestionService(questionRepo, testCategoryRepo())

	question, err := svc.Submit(context.Background(), ports.SubmitQuestionInput{
		Prompt:       "  Coffee vs Tea  ",
		Subtitle:     "the eternal debate",
		CategorySlug: "food",
		OptionNames:  []string{" Coffee ", "Tea"},
		SessionID:    "session-1",
	})
	require.NoError(t, err)
	require.Len(t, questionRepo.saved, 1)

	assert.Equal(t, domain.StatusDraft, question.Status, "submissions wait for review")
	assert.Equal(t, "Coffee vs Tea", question.Prompt)
	assert.Equal(t, "session-1", question.Metadata["submitted_by"])

	require.Len(t, question.Options, 2)
	assert.Equal(t, "Coffee", question.Options[0].Name)
	assert.Equal(t, 0, question.Options[0].SortOrder)
	assert.Equal(t, "Tea", question.Options[1].Name)
	assert.Equal(t, 1, question.Options[1].SortOrder)
}

func TestGetInvalidID(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionRepo{}, testCategoryRepo())

	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidQuestionID)
}

func TestResultsWithoutVoting(t *testing.T) {
	q := newTestQuestion(7, 3)
	questionRepo := &fakeQuestionRepo{questions: map[uuid.UUID]*domain.Question{q.ID: q}}
	svc := NewQuestionService(questionRepo, testCategoryRepo())

	results, err := svc.Results(context.Background(), q.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 70, results.Results[0].Percentage)
	for _, r := range results.Results {
		assert.False(t, r.IsUserVote, "viewer has not voted")
	}
}
