package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/repository"
)

const (
	maxBodyBytes        = 64 << 10
	genericErrorMessage = "An internal server error occurred."
)

// Responder writes the JSON envelope for successes and failures. Error
// details are exposed to the caller only in development mode.
type Responder struct {
	development bool
}

func NewResponder(development bool) *Responder {
	return &Responder{development: development}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// Error maps err to a status code and writes the error envelope.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Reason, Field: ve.Field})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		resp := errorResponse{Error: genericErrorMessage}
		if rs.development {
			resp.Details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Invalid("body", "Request body is too large")
		}
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("body", "Request body is required")
		}
		return apperr.Invalid("body", "Invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// CORS allows cross-origin requests from the given origins only. Requests
// that carry any other Origin are rejected with 403 before reaching next.
// Requests without an Origin header (same-origin, curl) pass through.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       allowedOrigins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return func(next http.Handler) http.Handler {
		wrapped := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Origin") != "" && !c.OriginAllowed(r) {
				writeJSON(w, http.StatusForbidden, errorResponse{Error: "Not allowed by CORS"})
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}
