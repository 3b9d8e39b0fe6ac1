package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/pkg/rates"
)

func TestRatesHandler_Latest(t *testing.T) {
	h := NewRatesHandler(&mockRatesService{}, NewResponder(false))

	rec := httptest.NewRecorder()
	h.Latest(rec, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var table rates.Table
	if err := json.NewDecoder(rec.Body).Decode(&table); err != nil {
		t.Fatal(err)
	}
	if table.Base != "USD" || table.Rates["KES"] != 150 {
		t.Errorf("unexpected table %+v", table)
	}
}

func TestRatesHandler_UpstreamFailure(t *testing.T) {
	h := NewRatesHandler(&mockRatesService{
		latestFunc: func(ctx context.Context) (rates.Table, error) {
			return rates.Table{}, apperr.Upstream("rates", "latest", errors.New("502"))
		},
	}, NewResponder(false))

	rec := httptest.NewRecorder()
	h.Latest(rec, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHealth_OK(t *testing.T) {
	h := NewHealthHandler(&mockDB{})
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Message != "Portfolio API" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	h := NewHealthHandler(&mockDB{
		pingFunc: func(ctx context.Context) error { return errors.New("connection refused") },
	})
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
