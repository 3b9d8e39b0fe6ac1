package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/mailer"
	"github.com/kikoi/portfolio-backend/internal/model"
)

// Replier produces an assistant reply for a visitor message.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ChatReply is the outcome of one chatbot exchange.
type ChatReply struct {
	UserID         string
	Response       string
	ConversationID string // id of the logged user turn
}

// ChatbotService handles visitor chat messages.
type ChatbotService interface {
	// HandleMessage logs the user turn, generates a reply, logs the assistant
	// turn against the user turn and notifies the operator. An empty userID
	// is replaced by a fresh UUID.
	HandleMessage(ctx context.Context, userID, message string) (*ChatReply, error)
	History(ctx context.Context, userID string) ([]*model.ConversationMessage, error)
}

type chatbotServiceImpl struct {
	log      ConversationLog
	replier  Replier
	notifier ChatNotifier
}

func NewChatbotService(log ConversationLog, replier Replier, notifier ChatNotifier) ChatbotService {
	return &chatbotServiceImpl{log: log, replier: replier, notifier: notifier}
}

func (s *chatbotServiceImpl) HandleMessage(ctx context.Context, userID, message string) (*ChatReply, error) {
	if err := requireFields(requiredField{"message", message}); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = uuid.NewString()
	}

	userTurn, err := s.log.LogUserTurn(ctx, userID, message)
	if err != nil {
		return nil, err
	}

	reply, err := s.replier.Reply(ctx, message)
	if err != nil {
		return nil, apperr.Upstream("ai", "generate reply", err)
	}

	if _, err := s.log.LogAssistantTurn(ctx, userID, reply, userTurn.ID); err != nil {
		return nil, err
	}

	// The reply is already stored, so a failed notification does not fail the request.
	if err := s.notifier.NotifyChat(ctx, mailer.ChatExchange{UserID: userID, Message: message, Reply: reply}); err != nil {
		slog.Warn("chat notification failed", "user_id", userID, "error", err)
	}

	return &ChatReply{UserID: userID, Response: reply, ConversationID: userTurn.ID}, nil
}

func (s *chatbotServiceImpl) History(ctx context.Context, userID string) ([]*model.ConversationMessage, error) {
	return s.log.History(ctx, userID)
}
