package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	OptionID string `json:"option_id"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionIDParam(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		handleServiceError(w, domain.ErrInvalidOption)
		return
	}

	results, err := h.service.Vote(r.Context(), ports.VoteInput{
		QuestionID: questionID,
		OptionID:   optionID,
		SessionID:  sessionID(r),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionIDParam(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	vote, err := h.service.MyVote(r.Context(), questionID, sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"option_id": vote.OptionID.String(),
	})
}
