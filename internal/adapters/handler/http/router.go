package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler wires every route under /api. All routes run behind the
// session middleware, so handlers can rely on a session identifier being
// present.
func NewHandler(
	feed *FeedHandler,
	question *QuestionHandler,
	vote *VoteHandler,
	impression *ImpressionHandler,
	stats *StatsHandler,
	reaction *ReactionHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(SessionMiddleware)

		r.Get("/feed", feed.GetFeed)
		r.Get("/categories", question.ListCategories)
		r.Get("/featured", stats.GetFeatured)
		r.Get("/leaderboard", stats.GetLeaderboard)
		r.Get("/history", stats.GetHistory)
		r.Get("/streak", stats.GetStreak)
		r.Get("/stats", stats.GetStats)
		r.Get("/achievements", stats.GetAchievements)
		r.Get("/recap", stats.GetRecap)

		r.Route("/questions", func(r chi.Router) {
			r.Post("/", question.Submit)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", question.Get)
				r.Get("/results", question.GetResults)
				r.Post("/votes", vote.CastVote)
				r.Get("/my-vote", vote.GetMyVote)
				r.Post("/skip", impression.Skip)
				r.Post("/seen", impression.Seen)
				r.Get("/reactions", reaction.Get)
				r.Post("/reactions", reaction.Post)
			})
		})
	})

	return r
}
