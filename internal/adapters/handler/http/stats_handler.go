package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type StatsHandler struct {
	stats        ports.StatsService
	achievements ports.AchievementService
	featured     ports.FeaturedService
	leaderboard  ports.LeaderboardService
}

func NewStatsHandler(
	stats ports.StatsService,
	achievements ports.AchievementService,
	featured ports.FeaturedService,
	leaderboard ports.LeaderboardService,
) *StatsHandler {
	return &StatsHandler{
		stats:        stats,
		achievements: achievements,
		featured:     featured,
		leaderboard:  leaderboard,
	}
}

func (h *StatsHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := h.stats.Streak(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	summary, err := h.achievements.Achievements(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *StatsHandler) GetRecap(w http.ResponseWriter, r *http.Request) {
	recap, err := h.stats.Recap(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recap)
}

func (h *StatsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	var cursor time.Time
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			handleServiceError(w, fmt.Errorf("%w: invalid cursor", domain.ErrValidation))
			return
		}
		cursor = parsed
	}

	history, err := h.stats.History(r.Context(), sessionID(r), cursor)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *StatsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboard.Leaderboard(r.Context(), r.URL.Query().Get("tab"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": board})
}

func (h *StatsHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	featured, err := h.featured.Featured(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"featured": featured})
}
