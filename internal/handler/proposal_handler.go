package handler

import (
	"net/http"

	"github.com/kikoi/portfolio-backend/internal/service"
)

// ProposalHandler handles budget calculator submissions.
type ProposalHandler struct {
	proposalService service.ProposalService
	resp            *Responder
}

func NewProposalHandler(proposalService service.ProposalService, resp *Responder) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService, resp: resp}
}

// Generate handles POST /api/generate-proposal.
func (h *ProposalHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req service.ProposalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	if _, err := h.proposalService.Generate(r.Context(), req); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Proposal generated and sent successfully.",
	})
}
