package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/model"
	"github.com/kikoi/portfolio-backend/internal/repository"
	"github.com/kikoi/portfolio-backend/internal/storage"
)

type proposalServiceImpl struct {
	repo     repository.ProposalRepository
	renderer DocumentRenderer
	mailer   ProposalMailer
	archive  storage.Storage // optional
}

// NewProposalService creates a ProposalService. archive may be nil, in which
// case generated documents are not archived.
func NewProposalService(repo repository.ProposalRepository, renderer DocumentRenderer, mailer ProposalMailer, archive storage.Storage) ProposalService {
	return &proposalServiceImpl{repo: repo, renderer: renderer, mailer: mailer, archive: archive}
}

func (s *proposalServiceImpl) Generate(ctx context.Context, req ProposalRequest) (*model.Proposal, error) {
	p, err := buildProposal(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, apperr.Upstream("database", "save proposal", err)
	}

	pdf, err := s.renderer.Render(p)
	if err != nil {
		return nil, fmt.Errorf("render proposal %s: %w", p.ID, err)
	}

	if s.archive != nil {
		key := storage.ProposalKey(p.ID)
		if _, err := s.archive.Save(ctx, key, bytes.NewReader(pdf), "application/pdf"); err != nil {
			slog.Warn("proposal archive failed", "proposal_id", p.ID, "key", key, "error", err)
		}
	}

	if err := s.mailer.SendProposalToClient(ctx, p, pdf); err != nil {
		return nil, err
	}
	if err := s.mailer.NotifyProposalOperator(ctx, p, pdf); err != nil {
		return nil, err
	}
	return p, nil
}

func buildProposal(req ProposalRequest) (*model.Proposal, error) {
	email := strings.TrimSpace(req.ClientEmail)
	if email == "" {
		return nil, apperr.Missing("clientEmail")
	}
	if req.ProjectType == nil || strings.TrimSpace(req.ProjectType.Label) == "" {
		return nil, apperr.Missing("projectType")
	}
	if req.Budget == nil {
		return nil, apperr.Missing("budget")
	}
	if err := validEmail("clientEmail", email); err != nil {
		return nil, err
	}
	if req.Budget.Min < 0 || req.Budget.Max < req.Budget.Min {
		return nil, apperr.Invalid("budget", "Budget must satisfy 0 <= min <= max")
	}

	features := make([]model.Option, 0, len(req.Features))
	for i, f := range req.Features {
		if strings.TrimSpace(f.Label) == "" {
			return nil, apperr.Invalid(fmt.Sprintf("features[%d]", i), "Feature label must not be empty")
		}
		features = append(features, f)
	}

	return &model.Proposal{
		ClientEmail:      email,
		ProjectType:      *req.ProjectType,
		SelectedFeatures: features,
		EstimatedBudget:  *req.Budget,
		Status:           model.ProposalStatusNew,
	}, nil
}
