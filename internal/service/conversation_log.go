package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/model"
	"github.com/kikoi/portfolio-backend/internal/repository"
)

// ConversationLog records chatbot turns. Each write is a single insert; a
// user turn and its assistant turn are not written atomically.
type ConversationLog interface {
	LogUserTurn(ctx context.Context, userID, content string) (*model.ConversationMessage, error)
	LogAssistantTurn(ctx context.Context, userID, content, contextMessageID string) (*model.ConversationMessage, error)
	// History returns every turn for userID, oldest first.
	History(ctx context.Context, userID string) ([]*model.ConversationMessage, error)
	// ActiveMessages returns all turns with status "active", newest first.
	ActiveMessages(ctx context.Context) ([]*model.ConversationMessage, error)
	// UpdateStatus moves a turn to another status. Unknown ids return
	// repository.ErrNotFound.
	UpdateStatus(ctx context.Context, id, status string) error
}

type conversationLogImpl struct {
	repo repository.ConversationRepository
}

func NewConversationLog(repo repository.ConversationRepository) ConversationLog {
	return &conversationLogImpl{repo: repo}
}

func (l *conversationLogImpl) LogUserTurn(ctx context.Context, userID, content string) (*model.ConversationMessage, error) {
	return l.insert(ctx, &model.ConversationMessage{
		UserID:      userID,
		MessageType: model.MessageTypeUser,
		Content:     content,
		Status:      model.MessageStatusActive,
	})
}

func (l *conversationLogImpl) LogAssistantTurn(ctx context.Context, userID, content, contextMessageID string) (*model.ConversationMessage, error) {
	if contextMessageID == "" {
		return nil, apperr.Missing("contextMessageId")
	}
	return l.insert(ctx, &model.ConversationMessage{
		UserID:           userID,
		MessageType:      model.MessageTypeAI,
		Content:          content,
		ContextMessageID: contextMessageID,
		Status:           model.MessageStatusActive,
	})
}

func (l *conversationLogImpl) insert(ctx context.Context, msg *model.ConversationMessage) (*model.ConversationMessage, error) {
	if strings.TrimSpace(msg.UserID) == "" {
		return nil, apperr.Missing("userId")
	}
	if err := l.repo.Insert(ctx, msg); err != nil {
		return nil, apperr.Upstream("database", "log "+msg.MessageType+" turn", err)
	}
	return msg, nil
}

func (l *conversationLogImpl) History(ctx context.Context, userID string) ([]*model.ConversationMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Missing("userId")
	}
	msgs, err := l.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Upstream("database", "conversation history", err)
	}
	return msgs, nil
}

func (l *conversationLogImpl) ActiveMessages(ctx context.Context) ([]*model.ConversationMessage, error) {
	msgs, err := l.repo.ListByStatus(ctx, model.MessageStatusActive)
	if err != nil {
		return nil, apperr.Upstream("database", "active messages", err)
	}
	return msgs, nil
}

func (l *conversationLogImpl) UpdateStatus(ctx context.Context, id, status string) error {
	if !model.ValidMessageStatus(status) {
		return apperr.Invalid("status", "Status must be one of active, archived, deleted")
	}
	// Ids are UUIDs; anything else cannot name a row.
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	err := l.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return apperr.Upstream("database", "update message status", err)
}
