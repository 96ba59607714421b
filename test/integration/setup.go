package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/versus/api/internal/adapters/handler/http"
	"github.com/versus/api/internal/adapters/ratelimit"
	repo "github.com/versus/api/internal/adapters/repository/postgres"
	"github.com/versus/api/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	questionRepo := repo.NewQuestionRepository(db)
	categoryRepo := repo.NewCategoryRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	impressionRepo := repo.NewImpressionRepository(db)
	statsRepo := repo.NewStatsRepository(db)
	reactionRepo := repo.NewReactionRepository(db)

	ranker := services.NewFeedRanker()
	feedSvc := services.NewFeedService(questionRepo, ranker, 10)
	questionSvc := services.NewQuestionService(questionRepo, categoryRepo)
	voteSvc := services.NewVoteService(questionRepo, voteRepo)
	impressionSvc := services.NewImpressionService(impressionRepo)
	statsSvc := services.NewStatsService(statsRepo, questionRepo)
	achievementSvc := services.NewAchievementService(statsRepo)
	featuredSvc := services.NewFeaturedService(questionRepo)
	reactionSvc := services.NewReactionService(questionRepo, reactionRepo)
	leaderboardSvc := services.NewLeaderboardService(questionRepo, voteRepo)

	limiter := ratelimit.NewMemoryStore()

	router := handler.NewHandler(
		handler.NewFeedHandler(feedSvc),
		handler.NewQuestionHandler(questionSvc, limiter, 5, time.Hour),
		handler.NewVoteHandler(voteSvc),
		handler.NewImpressionHandler(impressionSvc),
		handler.NewStatsHandler(statsSvc, achievementSvc, featuredSvc, leaderboardSvc),
		handler.NewReactionHandler(reactionSvc, limiter, 60, time.Minute),
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// do sends a request with the given session cookie and JSON body.
func (app *TestApp) do(t *testing.T, method, path, session string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: session})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (app *TestApp) createCategory(t *testing.T, name, slug string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := app.DB.Exec(
		"INSERT INTO categories (id, name, slug, icon_emoji) VALUES ($1, $2, $3, $4)",
		id, name, slug, "🏷️",
	)
	require.NoError(t, err)
	return id
}

func (app *TestApp) createQuestion(t *testing.T, categoryID uuid.UUID, prompt string, options ...string) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	questionID := uuid.New()
	_, err := app.DB.Exec(
		"INSERT INTO questions (id, category_id, prompt, status) VALUES ($1, $2, $3, 'active')",
		questionID, categoryID, prompt,
	)
	require.NoError(t, err)

	optionIDs := make([]uuid.UUID, 0, len(options))
	for i, name := range options {
		optionID := uuid.New()
		_, err := app.DB.Exec(
			"INSERT INTO options (id, question_id, name, sort_order) VALUES ($1, $2, $3, $4)",
			optionID, questionID, name, i,
		)
		require.NoError(t, err)
		optionIDs = append(optionIDs, optionID)
	}

	return questionID, optionIDs
}
