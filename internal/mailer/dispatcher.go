package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/model"
)

const (
	contactSenderName  = "Portfolio Contact"
	botSenderName      = "Portfolio Bot"
	chatSubject        = "New Portfolio Chat Message"
	clientAttachment   = "Project-Estimate.pdf"
	pdfContentType     = "application/pdf"
	defaultSubjectText = "No Subject"
)

// DispatcherConfig identifies the mailbox that sends and the one that
// receives operator notifications.
type DispatcherConfig struct {
	SenderAddress   string
	OperatorAddress string
	OwnerName       string
	Retry           RetryPolicy
}

// ChatExchange is one visitor message and the assistant reply to it.
type ChatExchange struct {
	UserID  string
	Message string
	Reply   string
}

// Dispatcher composes the portfolio's outbound emails and delivers each one
// through the gateway under the retry policy.
type Dispatcher struct {
	gateway Gateway
	cfg     DispatcherConfig
}

func NewDispatcher(gateway Gateway, cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{gateway: gateway, cfg: cfg}
}

// NotifyContact tells the operator about a contact form submission. The
// submitter is set as Reply-To.
func (d *Dispatcher) NotifyContact(ctx context.Context, msg *model.ContactMessage) error {
	m, err := d.contactMessage(msg)
	if err != nil {
		return err
	}
	return d.deliver(ctx, "contact", m)
}

// NotifyChat tells the operator about a chatbot exchange.
func (d *Dispatcher) NotifyChat(ctx context.Context, ex ChatExchange) error {
	m, err := d.chatMessage(ex)
	if err != nil {
		return err
	}
	return d.deliver(ctx, "chat", m)
}

// SendProposalToClient emails the rendered estimate to the client.
func (d *Dispatcher) SendProposalToClient(ctx context.Context, p *model.Proposal, pdf []byte) error {
	m, err := d.proposalClientMessage(p, pdf)
	if err != nil {
		return err
	}
	return d.deliver(ctx, "proposal_client", m)
}

// NotifyProposalOperator emails the lead summary and estimate to the operator.
func (d *Dispatcher) NotifyProposalOperator(ctx context.Context, p *model.Proposal, pdf []byte) error {
	m, err := d.proposalOperatorMessage(p, pdf)
	if err != nil {
		return err
	}
	return d.deliver(ctx, "proposal_operator", m)
}

func (d *Dispatcher) deliver(ctx context.Context, kind string, m *Message) error {
	err := d.cfg.Retry.Do(ctx, func(ctx context.Context) error {
		return d.gateway.Send(ctx, m)
	})
	if err != nil {
		slog.Error("email delivery failed", "kind", kind, "to", m.To, "error", err)
		return apperr.Upstream("mail", kind, err)
	}
	slog.Info("email sent", "kind", kind, "to", m.To)
	return nil
}

func (d *Dispatcher) contactMessage(msg *model.ContactMessage) (*Message, error) {
	html, text, err := contactBody.render(struct {
		*model.ContactMessage
		Lines []string
	}{msg, lines(msg.Message)})
	if err != nil {
		return nil, fmt.Errorf("render contact email: %w", err)
	}
	subject := msg.Subject
	if subject == "" {
		subject = defaultSubjectText
	}
	return &Message{
		FromName: contactSenderName,
		From:     d.cfg.SenderAddress,
		To:       []string{d.cfg.OperatorAddress},
		ReplyTo:  msg.Email,
		Subject:  "New Contact Message: " + subject,
		HTML:     html,
		Text:     text,
	}, nil
}

func (d *Dispatcher) chatMessage(ex ChatExchange) (*Message, error) {
	html, text, err := chatBody.render(struct {
		ChatExchange
		MessageLines []string
		ReplyLines   []string
	}{ex, lines(ex.Message), lines(ex.Reply)})
	if err != nil {
		return nil, fmt.Errorf("render chat email: %w", err)
	}
	return &Message{
		FromName: botSenderName,
		From:     d.cfg.SenderAddress,
		To:       []string{d.cfg.OperatorAddress},
		Subject:  chatSubject,
		HTML:     html,
		Text:     text,
	}, nil
}

type proposalView struct {
	Email       string
	ProjectType string
	Features    string
	Budget      string
	Owner       string
}

func (d *Dispatcher) proposalView(p *model.Proposal) proposalView {
	return proposalView{
		Email:       p.ClientEmail,
		ProjectType: p.ProjectType.Label,
		Features:    strings.Join(p.FeatureLabels(), ", "),
		Budget:      p.EstimatedBudget.Range(),
		Owner:       d.cfg.OwnerName,
	}
}

func (d *Dispatcher) proposalClientMessage(p *model.Proposal, pdf []byte) (*Message, error) {
	html, text, err := proposalClientBody.render(d.proposalView(p))
	if err != nil {
		return nil, fmt.Errorf("render proposal email: %w", err)
	}
	return &Message{
		FromName:    d.cfg.OwnerName,
		From:        d.cfg.SenderAddress,
		To:          []string{p.ClientEmail},
		Subject:     "Your Project Estimate | " + d.cfg.OwnerName,
		HTML:        html,
		Text:        text,
		Attachments: []Attachment{{Filename: clientAttachment, ContentType: pdfContentType, Data: pdf}},
	}, nil
}

func (d *Dispatcher) proposalOperatorMessage(p *model.Proposal, pdf []byte) (*Message, error) {
	html, text, err := proposalOperatorBody.render(d.proposalView(p))
	if err != nil {
		return nil, fmt.Errorf("render lead email: %w", err)
	}
	return &Message{
		FromName: botSenderName,
		From:     d.cfg.SenderAddress,
		To:       []string{d.cfg.OperatorAddress},
		ReplyTo:  p.ClientEmail,
		Subject:  "New Project Lead: " + p.ClientEmail,
		HTML:     html,
		Text:     text,
		Attachments: []Attachment{{
			Filename:    "Proposal-" + p.ClientEmail + ".pdf",
			ContentType: pdfContentType,
			Data:        pdf,
		}},
	}, nil
}
