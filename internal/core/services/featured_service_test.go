package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versus/api/internal/core/domain"
)

func TestFeaturedEmptyPool(t *testing.T) {
	svc := &featuredService{questionRepo: &fakeQuestionRepo{}, now: func() time.Time { return fixedNow }}

	featured, err := svc.Featured(context.Background())
	require.NoError(t, err)
	assert.Nil(t, featured)
}

func TestFeaturedPrefersControversial(t *testing.T) {
	lopsided := newTestQuestion(9, 1)
	lopsided.Prompt = "Pizza vs Salad"
	split := newTestQuestion(5, 5)
	split.Prompt = "Tabs vs Spaces"
	split.CategoryName = "Tech"

	// The controversy gap (0.2 vs 1.0 at weight 0.5) dominates the rotation
	// term, so the split question wins on every calendar day.
	repo := &fakeQuestionRepo{top: []*domain.Question{lopsided, split}}
	svc := &featuredService{questionRepo: repo, now: func() time.Time { return fixedNow }}

	featured, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.NotNil(t, featured)

	assert.Equal(t, split.ID, featured.ID)
	assert.Equal(t, "Tabs vs Spaces", featured.Prompt)
	assert.Equal(t, "Tech", featured.CategoryName)
	assert.Equal(t, int64(10), featured.TotalVotes)
	assert.Equal(t, 50, featured.WinnerPercentage)
}

func TestFeaturedStableWithinDay(t *testing.T) {
	var pool []*domain.Question
	for i := 0; i < 10; i++ {
		pool = append(pool, newTestQuestion(int64(3+i), int64(2+i)))
	}

	repo := &fakeQuestionRepo{top: pool}
	morning := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC)

	first, err := (&featuredService{questionRepo: repo, now: func() time.Time { return morning }}).Featured(context.Background())
	require.NoError(t, err)
	second, err := (&featuredService{questionRepo: repo, now: func() time.Time { return evening }}).Featured(context.Background())
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID, "the pick holds for a calendar day")
}
