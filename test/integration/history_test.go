package integration

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versus/api/internal/core/domain"
)

func TestHistoryEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	categoryID := app.createCategory(t, "Food", "food")
	pizza, pizzaOpts := app.createQuestion(t, categoryID, "Pizza vs Burger", "Pizza", "Burger")
	tea, teaOpts := app.createQuestion(t, categoryID, "Tea vs Coffee", "Tea", "Coffee")

	session := uuid.NewString()
	voteOn(t, app, session, pizza, pizzaOpts[0])
	voteOn(t, app, session, tea, teaOpts[0])

	// The crowd swings the second question the other way after our vote.
	voteOn(t, app, uuid.NewString(), tea, teaOpts[1])
	voteOn(t, app, uuid.NewString(), tea, teaOpts[1])

	resp := app.do(t, "GET", "/api/history", session, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history domain.VoteHistory
	decodeBody(t, resp, &history)
	require.Len(t, history.Votes, 2)
	assert.Nil(t, history.NextCursor)

	latest := history.Votes[0]
	assert.Equal(t, tea, latest.QuestionID)
	assert.Equal(t, "Tea vs Coffee", latest.Prompt)
	assert.Equal(t, "Food", latest.CategoryName)
	assert.Equal(t, "Tea", latest.VotedOptionName)
	assert.Equal(t, "Coffee", latest.WinnerName, "winner reflects the current tally, not vote time")
	assert.Equal(t, 67, latest.WinnerPercentage)
	assert.Equal(t, int64(3), latest.TotalVotes)

	earlier := history.Votes[1]
	assert.Equal(t, pizza, earlier.QuestionID)
	assert.Equal(t, "Pizza", earlier.VotedOptionName)
	assert.Equal(t, "Pizza", earlier.WinnerName)
	assert.Equal(t, 100, earlier.WinnerPercentage)
	assert.True(t, latest.VotedAt.After(earlier.VotedAt))
}

func TestHistoryCursor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	categoryID := app.createCategory(t, "Food", "food")
	questionID, optionIDs := app.createQuestion(t, categoryID, "Pizza vs Burger", "Pizza", "Burger")

	session := uuid.NewString()
	voteOn(t, app, session, questionID, optionIDs[0])

	// A cursor before the vote excludes it.
	cursor := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339Nano)
	resp := app.do(t, "GET", "/api/history?cursor="+url.QueryEscape(cursor), session, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history domain.VoteHistory
	decodeBody(t, resp, &history)
	assert.Empty(t, history.Votes)
	assert.Nil(t, history.NextCursor)

	resp = app.do(t, "GET", "/api/history?cursor=yesterday", session, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
