package service

import (
	"context"

	"github.com/kikoi/portfolio-backend/internal/model"
)

// ProposalRequest is the budget calculator submission. ProjectType and Budget
// are pointers so that an absent field can be told apart from a zero value.
type ProposalRequest struct {
	ClientEmail string         `json:"clientEmail"`
	ProjectType *model.Option  `json:"projectType"`
	Features    []model.Option `json:"features"`
	Budget      *model.Budget  `json:"budget"`
}

// ProposalService runs the proposal workflow: persist, render, archive, email.
type ProposalService interface {
	// Generate validates req and runs the workflow. A persistence failure
	// aborts before rendering or emailing. Later failures are not compensated.
	Generate(ctx context.Context, req ProposalRequest) (*model.Proposal, error)
}

// DocumentRenderer turns a proposal into PDF bytes.
type DocumentRenderer interface {
	Render(p *model.Proposal) ([]byte, error)
}
