package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/kikoi/portfolio-backend/internal/mailer"
	"github.com/kikoi/portfolio-backend/internal/model"
	"github.com/kikoi/portfolio-backend/pkg/rates"
)

// ---------------------------------------------------------------------------
// repositories
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	saveFunc func(ctx context.Context, msg *model.ContactMessage) error
	listFunc func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
}

func (m *mockContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

type mockProposalRepository struct {
	saveFunc func(ctx context.Context, p *model.Proposal) error
}

func (m *mockProposalRepository) Save(ctx context.Context, p *model.Proposal) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	p.ID = "p-1"
	return nil
}

// memConversationRepository keeps turns in insertion order.
type memConversationRepository struct {
	mu         sync.Mutex
	rows       []*model.ConversationMessage
	insertFunc func(ctx context.Context, msg *model.ConversationMessage) error
	updateFunc func(ctx context.Context, id, status string) error
}

func (m *memConversationRepository) Insert(ctx context.Context, msg *model.ConversationMessage) error {
	if m.insertFunc != nil {
		if err := m.insertFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID == "" {
		msg.ID = fmt.Sprintf("%s-%d", msg.MessageType, len(m.rows))
	}
	m.rows = append(m.rows, msg)
	return nil
}

func (m *memConversationRepository) ListByUser(ctx context.Context, userID string) ([]*model.ConversationMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.ConversationMessage{}
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memConversationRepository) ListByStatus(ctx context.Context, status string) ([]*model.ConversationMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.ConversationMessage{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].Status == status {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memConversationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, status)
	}
	return nil
}

// ---------------------------------------------------------------------------
// gateways
// ---------------------------------------------------------------------------

type mockNotifier struct {
	mu       sync.Mutex
	contacts []*model.ContactMessage
	chats    []mailer.ChatExchange
	clients  []*model.Proposal
	leads    []*model.Proposal

	notifyContactFunc func(ctx context.Context, msg *model.ContactMessage) error
	notifyChatFunc    func(ctx context.Context, ex mailer.ChatExchange) error
	sendClientFunc    func(ctx context.Context, p *model.Proposal, pdf []byte) error
	notifyLeadFunc    func(ctx context.Context, p *model.Proposal, pdf []byte) error
}

func (m *mockNotifier) NotifyContact(ctx context.Context, msg *model.ContactMessage) error {
	m.mu.Lock()
	m.contacts = append(m.contacts, msg)
	m.mu.Unlock()
	if m.notifyContactFunc != nil {
		return m.notifyContactFunc(ctx, msg)
	}
	return nil
}

func (m *mockNotifier) NotifyChat(ctx context.Context, ex mailer.ChatExchange) error {
	m.mu.Lock()
	m.chats = append(m.chats, ex)
	m.mu.Unlock()
	if m.notifyChatFunc != nil {
		return m.notifyChatFunc(ctx, ex)
	}
	return nil
}

func (m *mockNotifier) SendProposalToClient(ctx context.Context, p *model.Proposal, pdf []byte) error {
	m.mu.Lock()
	m.clients = append(m.clients, p)
	m.mu.Unlock()
	if m.sendClientFunc != nil {
		return m.sendClientFunc(ctx, p, pdf)
	}
	return nil
}

func (m *mockNotifier) NotifyProposalOperator(ctx context.Context, p *model.Proposal, pdf []byte) error {
	m.mu.Lock()
	m.leads = append(m.leads, p)
	m.mu.Unlock()
	if m.notifyLeadFunc != nil {
		return m.notifyLeadFunc(ctx, p, pdf)
	}
	return nil
}

type mockRenderer struct {
	renderFunc func(p *model.Proposal) ([]byte, error)
	calls      int
}

func (m *mockRenderer) Render(p *model.Proposal) ([]byte, error) {
	m.calls++
	if m.renderFunc != nil {
		return m.renderFunc(p)
	}
	return []byte("%PDF-test"), nil
}

type mockStorage struct {
	saveFunc func(ctx context.Context, key string, data io.ReadSeeker, contentType string) (string, error)
	keys     []string
}

func (m *mockStorage) Save(ctx context.Context, key string, data io.ReadSeeker, contentType string) (string, error) {
	m.keys = append(m.keys, key)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, key, data, contentType)
	}
	return "s3://bucket/" + key, nil
}

type mockReplier struct {
	replyFunc func(ctx context.Context, message string) (string, error)
}

func (m *mockReplier) Reply(ctx context.Context, message string) (string, error) {
	if m.replyFunc != nil {
		return m.replyFunc(ctx, message)
	}
	return "Thanks for reaching out!", nil
}

type mockRatesClient struct {
	latestFunc func(ctx context.Context) (rates.Table, error)
	calls      int
}

func (m *mockRatesClient) Latest(ctx context.Context) (rates.Table, error) {
	m.calls++
	if m.latestFunc != nil {
		return m.latestFunc(ctx)
	}
	return rates.Table{Amount: 1, Base: "USD", Rates: map[string]float64{"KES": 150}}, nil
}
