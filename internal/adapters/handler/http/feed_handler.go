package http

import (
	"net/http"

	"github.com/versus/api/internal/core/ports"
)

type FeedHandler struct {
	service ports.FeedService
}

func NewFeedHandler(service ports.FeedService) *FeedHandler {
	return &FeedHandler{
		service: service,
	}
}

func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Feed(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
