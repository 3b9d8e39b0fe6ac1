package service

import (
	"context"

	"github.com/kikoi/portfolio-backend/internal/mailer"
	"github.com/kikoi/portfolio-backend/internal/model"
)

// ContactNotifier emails the operator about a contact submission.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg *model.ContactMessage) error
}

// ChatNotifier emails the operator about a chatbot exchange.
type ChatNotifier interface {
	NotifyChat(ctx context.Context, ex mailer.ChatExchange) error
}

// ProposalMailer delivers the proposal estimate to the client and the operator.
type ProposalMailer interface {
	SendProposalToClient(ctx context.Context, p *model.Proposal, pdf []byte) error
	NotifyProposalOperator(ctx context.Context, p *model.Proposal, pdf []byte) error
}

var (
	_ ContactNotifier = (*mailer.Dispatcher)(nil)
	_ ChatNotifier    = (*mailer.Dispatcher)(nil)
	_ ProposalMailer  = (*mailer.Dispatcher)(nil)
)
