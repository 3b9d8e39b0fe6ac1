package handler

import (
	"context"

	"github.com/kikoi/portfolio-backend/internal/model"
	"github.com/kikoi/portfolio-backend/internal/service"
	"github.com/kikoi/portfolio-backend/pkg/rates"
)

type mockContactService struct {
	submitFunc func(ctx context.Context, msg *model.ContactMessage) error
	listFunc   func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
}

func (m *mockContactService) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

type mockProposalService struct {
	generateFunc func(ctx context.Context, req service.ProposalRequest) (*model.Proposal, error)
}

func (m *mockProposalService) Generate(ctx context.Context, req service.ProposalRequest) (*model.Proposal, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &model.Proposal{ID: "p-1"}, nil
}

type mockChatbotService struct {
	handleFunc  func(ctx context.Context, userID, message string) (*service.ChatReply, error)
	historyFunc func(ctx context.Context, userID string) ([]*model.ConversationMessage, error)
}

func (m *mockChatbotService) HandleMessage(ctx context.Context, userID, message string) (*service.ChatReply, error) {
	if m.handleFunc != nil {
		return m.handleFunc(ctx, userID, message)
	}
	return &service.ChatReply{UserID: userID, Response: "hi", ConversationID: "c-1"}, nil
}

func (m *mockChatbotService) History(ctx context.Context, userID string) ([]*model.ConversationMessage, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, userID)
	}
	return nil, nil
}

type mockConversationLog struct {
	activeFunc       func(ctx context.Context) ([]*model.ConversationMessage, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockConversationLog) LogUserTurn(ctx context.Context, userID, content string) (*model.ConversationMessage, error) {
	return &model.ConversationMessage{UserID: userID, Content: content}, nil
}

func (m *mockConversationLog) LogAssistantTurn(ctx context.Context, userID, content, contextMessageID string) (*model.ConversationMessage, error) {
	return &model.ConversationMessage{UserID: userID, Content: content, ContextMessageID: contextMessageID}, nil
}

func (m *mockConversationLog) History(ctx context.Context, userID string) ([]*model.ConversationMessage, error) {
	return nil, nil
}

func (m *mockConversationLog) ActiveMessages(ctx context.Context) ([]*model.ConversationMessage, error) {
	if m.activeFunc != nil {
		return m.activeFunc(ctx)
	}
	return nil, nil
}

func (m *mockConversationLog) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

type mockRatesService struct {
	latestFunc func(ctx context.Context) (rates.Table, error)
}

func (m *mockRatesService) Latest(ctx context.Context) (rates.Table, error) {
	if m.latestFunc != nil {
		return m.latestFunc(ctx)
	}
	return rates.Table{Amount: 1, Base: "USD", Date: "2026-01-02", Rates: map[string]float64{"KES": 150}}, nil
}

type mockDB struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockDB) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}
