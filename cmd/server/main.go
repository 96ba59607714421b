package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/versus/api/internal/adapters/handler/http"
	"github.com/versus/api/internal/adapters/ratelimit"
	"github.com/versus/api/internal/adapters/repository/postgres"
	"github.com/versus/api/internal/config"
	"github.com/versus/api/internal/core/ports"
	"github.com/versus/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.Open(cfg.Postgres.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	questionRepo := postgres.NewQuestionRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	impressionRepo := postgres.NewImpressionRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	reactionRepo := postgres.NewReactionRepository(db)

	ranker := services.NewFeedRanker()
	feedService := services.NewFeedService(questionRepo, ranker, cfg.Feed.PageSize)
	questionService := services.NewQuestionService(questionRepo, categoryRepo)
	voteService := services.NewVoteService(questionRepo, voteRepo)
	impressionService := services.NewImpressionService(impressionRepo)
	statsService := services.NewStatsService(statsRepo, questionRepo)
	achievementService := services.NewAchievementService(statsRepo)
	featuredService := services.NewFeaturedService(questionRepo)
	reactionService := services.NewReactionService(questionRepo, reactionRepo)
	leaderboardService := services.NewLeaderboardService(questionRepo, voteRepo)

	var limiter ports.RateLimiter = ratelimit.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		limiter = ratelimit.NewRedisStore(client)
		log.Println("Rate limiting backed by redis")
	}

	handler := http.NewHandler(
		http.NewFeedHandler(feedService),
		http.NewQuestionHandler(questionService, limiter, cfg.RateLimit.SubmitLimit, cfg.RateLimit.SubmitWindow),
		http.NewVoteHandler(voteService),
		http.NewImpressionHandler(impressionService),
		http.NewStatsHandler(statsService, achievementService, featuredService, leaderboardService),
		http.NewReactionHandler(reactionService, limiter, cfg.RateLimit.ReactionLimit, cfg.RateLimit.ReactionWindow),
	)

	server := &stdhttp.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
