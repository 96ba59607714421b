package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuestion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createCategory(t, "Food", "food")
	session := uuid.NewString()

	resp := app.do(t, "POST", "/api/questions", session, map[string]any{
		"prompt":        "Ramen vs Pho",
		"category_slug": "food",
		"options":       []string{"Ramen", "Pho"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	decodeBody(t, resp, &created)
	assert.Equal(t, "draft", created["status"])
	require.NotEmpty(t, created["question_id"])

	// Drafts carry the submitting session and stay out of the feed.
	var status, submittedBy string
	err := app.DB.QueryRow(
		"SELECT status, metadata->>'submitted_by' FROM questions WHERE id = $1",
		created["question_id"],
	).Scan(&status, &submittedBy)
	require.NoError(t, err)
	assert.Equal(t, "draft", status)
	assert.Equal(t, session, submittedBy)

	page := getFeed(t, app, uuid.NewString())
	assert.Empty(t, page.Questions)
}

func TestSubmitValidationErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createCategory(t, "Food", "food")

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{
			name:    "missing prompt",
			payload: map[string]any{"category_slug": "food", "options": []string{"A", "B"}},
		},
		{
			name:    "single option",
			payload: map[string]any{"prompt": "A vs B", "category_slug": "food", "options": []string{"A"}},
		},
		{
			name:    "unknown category",
			payload: map[string]any{"prompt": "A vs B", "category_slug": "nope", "options": []string{"A", "B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.do(t, "POST", "/api/questions", uuid.NewString(), tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestSubmitRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createCategory(t, "Food", "food")
	session := uuid.NewString()

	payload := map[string]any{
		"prompt":        "Ramen vs Pho",
		"category_slug": "food",
		"options":       []string{"Ramen", "Pho"},
	}

	for i := 0; i < 5; i++ {
		resp := app.do(t, "POST", "/api/questions", session, payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "submission %d within the limit", i+1)
		resp.Body.Close()
	}

	resp := app.do(t, "POST", "/api/questions", session, payload)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	resp.Body.Close()

	// Another session is unaffected.
	resp = app.do(t, "POST", "/api/questions", uuid.NewString(), payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestListCategories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createCategory(t, "Food", "food")
	app.createCategory(t, "Tech", "tech")

	resp := app.do(t, "GET", "/api/categories", uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"categories"`
	}
	decodeBody(t, resp, &body)

	require.Len(t, body.Categories, 2)
	assert.Equal(t, "Food", body.Categories[0].Name)
	assert.Equal(t, "Tech", body.Categories[1].Name)
}
