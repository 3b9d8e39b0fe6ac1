package handler

import (
	"net/http"

	"github.com/kikoi/portfolio-backend/internal/service"
)

// RatesHandler serves the currency rate table.
type RatesHandler struct {
	ratesService service.RatesService
	resp         *Responder
}

func NewRatesHandler(ratesService service.RatesService, resp *Responder) *RatesHandler {
	return &RatesHandler{ratesService: ratesService, resp: resp}
}

// Latest handles GET /api/rates.
func (h *RatesHandler) Latest(w http.ResponseWriter, r *http.Request) {
	table, err := h.ratesService.Latest(r.Context())
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}
