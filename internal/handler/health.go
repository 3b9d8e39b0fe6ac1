package handler

import (
	"net/http"

	"github.com/kikoi/portfolio-backend/internal/repository"
)

// HealthHandler reports whether the database is reachable.
type HealthHandler struct {
	db repository.DB
}

func NewHealthHandler(db repository.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: "database unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Portfolio API"})
}
