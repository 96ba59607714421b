package http

import (
	"net/http"

	"github.com/versus/api/internal/core/ports"
)

type ImpressionHandler struct {
	service ports.ImpressionService
}

func NewImpressionHandler(service ports.ImpressionService) *ImpressionHandler {
	return &ImpressionHandler{
		service: service,
	}
}

func (h *ImpressionHandler) Skip(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionIDParam(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.MarkSkipped(r.Context(), questionID, sessionID(r)); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ImpressionHandler) Seen(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionIDParam(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.MarkShown(r.Context(), questionID, sessionID(r)); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
