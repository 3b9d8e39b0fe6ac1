package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kikoi/portfolio-backend/internal/model"
)

func TestPgProposalRepository_Save_StoresJSONInOrder(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgProposalRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO proposals").
		WithArgs(
			"client@example.com",
			[]byte(`{"label":"Website","key":"web"}`),
			[]byte(`[{"label":"Blog"},{"label":"Shop"}]`),
			[]byte(`{"min":500,"max":900}`),
			"new",
		).
		WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow("p-1", now))

	p := &model.Proposal{
		ClientEmail:      "client@example.com",
		ProjectType:      model.Option{Label: "Website", Key: "web"},
		SelectedFeatures: []model.Option{{Label: "Blog"}, {Label: "Shop"}},
		EstimatedBudget:  model.Budget{Min: 500, Max: 900},
		Status:           "new",
	}
	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.ID != "p-1" {
		t.Errorf("expected ID=p-1, got %q", p.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPgProposalRepository_Save_NilFeaturesStoredAsEmptyArray(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgProposalRepository(mock)

	mock.ExpectQuery("INSERT INTO proposals").
		WithArgs(
			"client@example.com",
			[]byte(`{"label":"Landing page"}`),
			[]byte(`[]`),
			[]byte(`{"min":100,"max":200}`),
			"new",
		).
		WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow("p-2", time.Now()))

	p := &model.Proposal{
		ClientEmail:     "client@example.com",
		ProjectType:     model.Option{Label: "Landing page"},
		EstimatedBudget: model.Budget{Min: 100, Max: 200},
		Status:          "new",
	}
	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
