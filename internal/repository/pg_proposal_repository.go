package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kikoi/portfolio-backend/internal/model"
)

// ProposalRepository defines the persistence interface for proposals.
type ProposalRepository interface {
	Save(ctx context.Context, p *model.Proposal) error
}

// PgProposalRepository is the PostgreSQL implementation of ProposalRepository.
// Project type, features and budget are stored as JSONB so the feature order
// survives the round trip.
type PgProposalRepository struct {
	db Querier
}

// NewPgProposalRepository creates a PgProposalRepository backed by the given pool.
func NewPgProposalRepository(db Querier) *PgProposalRepository {
	return &PgProposalRepository{db: db}
}

var _ ProposalRepository = (*PgProposalRepository)(nil)

// Save inserts a new proposals row and populates p.ID and p.CreatedAt.
func (r *PgProposalRepository) Save(ctx context.Context, p *model.Proposal) error {
	projectType, err := json.Marshal(p.ProjectType)
	if err != nil {
		return fmt.Errorf("encode project type: %w", err)
	}
	features := p.SelectedFeatures
	if features == nil {
		features = []model.Option{}
	}
	selected, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	budget, err := json.Marshal(p.EstimatedBudget)
	if err != nil {
		return fmt.Errorf("encode budget: %w", err)
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO proposals (client_email, project_type, selected_features, estimated_budget, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.ClientEmail, projectType, selected, budget, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}
