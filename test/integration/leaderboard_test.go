package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versus/api/internal/core/domain"
)

type leaderboardPage struct {
	Questions []domain.LeaderboardQuestion `json:"questions"`
}

// setVoteCounts seeds option counters directly so eligibility thresholds can
// be reached without casting every vote over HTTP.
func (app *TestApp) setVoteCounts(t *testing.T, questionID uuid.UUID, optionIDs []uuid.UUID, counts ...int64) {
	t.Helper()

	var total int64
	for i, c := range counts {
		_, err := app.DB.Exec("UPDATE options SET vote_count = $1 WHERE id = $2", c, optionIDs[i])
		require.NoError(t, err)
		total += c
	}
	_, err := app.DB.Exec("UPDATE questions SET total_votes = $1 WHERE id = $2", total, questionID)
	require.NoError(t, err)
}

func TestLeaderboardControversialTab(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	categoryID := app.createCategory(t, "Food", "food")

	contested, contestedOpts := app.createQuestion(t, categoryID, "Pizza vs Burger", "Pizza", "Burger")
	app.setVoteCounts(t, contested, contestedOpts, 3, 3)

	landslide, landslideOpts := app.createQuestion(t, categoryID, "Water vs Soda", "Water", "Soda")
	app.setVoteCounts(t, landslide, landslideOpts, 9, 1)

	// A perfect split, but below the eligibility floor.
	tooQuiet, tooQuietOpts := app.createQuestion(t, categoryID, "Tea vs Coffee", "Tea", "Coffee")
	app.setVoteCounts(t, tooQuiet, tooQuietOpts, 2, 2)

	resp := app.do(t, "GET", "/api/leaderboard?tab=controversial", uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page leaderboardPage
	decodeBody(t, resp, &page)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, contested, page.Questions[0].ID, "even split ranks first")
	assert.Equal(t, landslide, page.Questions[1].ID)
	assert.Greater(t, page.Questions[0].Controversy, page.Questions[1].Controversy)

	for _, q := range page.Questions {
		assert.NotEqual(t, tooQuiet, q.ID, "questions under the vote floor must not appear")
	}
}

func TestLeaderboardHotTab(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	categoryID := app.createCategory(t, "Food", "food")
	busy, busyOpts := app.createQuestion(t, categoryID, "Pizza vs Burger", "Pizza", "Burger")
	quiet, quietOpts := app.createQuestion(t, categoryID, "Tea vs Coffee", "Tea", "Coffee")

	voteOn(t, app, uuid.NewString(), busy, busyOpts[0])
	voteOn(t, app, uuid.NewString(), busy, busyOpts[1])
	voteOn(t, app, uuid.NewString(), quiet, quietOpts[0])

	resp := app.do(t, "GET", "/api/leaderboard", uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page leaderboardPage
	decodeBody(t, resp, &page)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, busy, page.Questions[0].ID)
	assert.Equal(t, int64(2), page.Questions[0].RecentVotes)
	assert.Equal(t, int64(1), page.Questions[1].RecentVotes)
}

func TestLeaderboardNewestTab(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	categoryID := app.createCategory(t, "Food", "food")
	older, _ := app.createQuestion(t, categoryID, "Pizza vs Burger", "Pizza", "Burger")
	_, err := app.DB.Exec("UPDATE questions SET created_at = NOW() - INTERVAL '1 day' WHERE id = $1", older)
	require.NoError(t, err)
	newer, _ := app.createQuestion(t, categoryID, "Tea vs Coffee", "Tea", "Coffee")

	resp := app.do(t, "GET", "/api/leaderboard?tab=newest", uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page leaderboardPage
	decodeBody(t, resp, &page)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, newer, page.Questions[0].ID)
	assert.Equal(t, older, page.Questions[1].ID)
}

func TestLeaderboardUnknownTabRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.do(t, "GET", "/api/leaderboard?tab=spiciest", uuid.NewString(), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
