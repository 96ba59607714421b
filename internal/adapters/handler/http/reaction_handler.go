package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type ReactionHandler struct {
	service        ports.ReactionService
	limiter        ports.RateLimiter
	reactionLimit  int
	reactionWindow time.Duration
}

func NewReactionHandler(service ports.ReactionService, limiter ports.RateLimiter, reactionLimit int, reactionWindow time.Duration) *ReactionHandler {
	return &ReactionHandler{
		service:        service,
		limiter:        limiter,
		reactionLimit:  reactionLimit,
		reactionWindow: reactionWindow,
	}
}

func (h *ReactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionIDParam(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	summary, err := h.service.Reactions(r.Context(), questionID, sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

type reactRequest struct {
	Emoji string `json:"emoji"`
}

func (h *ReactionHandler) Post(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionIDParam(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	session := sessionID(r)

	allowed, err := h.limiter.Allow(r.Context(), "reaction:"+session, h.reactionLimit, h.reactionWindow)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if !allowed {
		handleServiceError(w, domain.ErrRateLimited)
		return
	}

	var req reactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.React(r.Context(), ports.ReactInput{
		QuestionID: questionID,
		SessionID:  session,
		Emoji:      req.Emoji,
	}); err != nil {
		handleServiceError(w, err)
		return
	}

	summary, err := h.service.Reactions(r.Context(), questionID, session)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
