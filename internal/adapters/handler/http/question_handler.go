package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type QuestionHandler struct {
	service      ports.QuestionService
	limiter      ports.RateLimiter
	submitLimit  int
	submitWindow time.Duration
}

func NewQuestionHandler(service ports.QuestionService, limiter ports.RateLimiter, submitLimit int, submitWindow time.Duration) *QuestionHandler {
	return &QuestionHandler{
		service:      service,
		limiter:      limiter,
		submitLimit:  submitLimit,
		submitWindow: submitWindow,
	}
}

func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	question, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *QuestionHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type submitQuestionRequest struct {
	Prompt       string   `json:"prompt"`
	Subtitle     string   `json:"subtitle"`
	CategorySlug string   `json:"category_slug"`
	Options      []string `json:"options"`
}

func (h *QuestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)

	allowed, err := h.limiter.Allow(r.Context(), "submit:"+session, h.submitLimit, h.submitWindow)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if !allowed {
		handleServiceError(w, domain.ErrRateLimited)
		return
	}

	var req submitQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.service.Submit(r.Context(), ports.SubmitQuestionInput{
		Prompt:       req.Prompt,
		Subtitle:     req.Subtitle,
		CategorySlug: req.CategorySlug,
		OptionNames:  req.Options,
		SessionID:    session,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"question_id": question.ID,
		"status":      question.Status,
		"message":     "submission received and pending review",
	})
}
