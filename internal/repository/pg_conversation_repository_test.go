package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/kikoi/portfolio-backend/internal/model"
)

var conversationCols = []string{"id", "user_id", "message_type", "message_content", "context_message_id", "status", "created_at"}

func TestPgConversationRepository_Insert(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgConversationRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO chat_conversations").
		WithArgs("visitor-1", "ai", "Hello!", "u-1", "active").
		WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow("a-1", now))

	msg := &model.ConversationMessage{
		UserID:           "visitor-1",
		MessageType:      model.MessageTypeAI,
		Content:          "Hello!",
		ContextMessageID: "u-1",
		Status:           model.MessageStatusActive,
	}
	if err := repo.Insert(context.Background(), msg); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if msg.ID != "a-1" {
		t.Errorf("expected ID=a-1, got %q", msg.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPgConversationRepository_ListByUser_Chronological(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgConversationRepository(mock)

	t0 := time.Now().UTC()
	mock.ExpectQuery(`ORDER BY created_at ASC, seq ASC`).
		WithArgs("visitor-1").
		WillReturnRows(mock.NewRows(conversationCols).
			AddRow("u-1", "visitor-1", "user", "hi", "", "active", t0).
			AddRow("a-1", "visitor-1", "ai", "hello", "u-1", "active", t0.Add(time.Second)))

	got, err := repo.ListByUser(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].MessageType != "user" || got[1].MessageType != "ai" {
		t.Errorf("unexpected order: %s, %s", got[0].MessageType, got[1].MessageType)
	}
	if got[1].ContextMessageID != got[0].ID {
		t.Errorf("expected ai turn to reference %q, got %q", got[0].ID, got[1].ContextMessageID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPgConversationRepository_ListByUser_EmptyIsNotNil(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgConversationRepository(mock)

	mock.ExpectQuery("FROM chat_conversations").
		WithArgs("nobody").
		WillReturnRows(mock.NewRows(conversationCols))

	got, err := repo.ListByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if got == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestPgConversationRepository_ListByStatus_NewestFirst(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgConversationRepository(mock)

	mock.ExpectQuery(`WHERE status = \$1\s+ORDER BY created_at DESC`).
		WithArgs("active").
		WillReturnRows(mock.NewRows(conversationCols).
			AddRow("a-1", "v", "ai", "hello", "u-1", "active", time.Now()))

	got, err := repo.ListByStatus(context.Background(), "active")
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 turn, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPgConversationRepository_UpdateStatus(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgConversationRepository(mock)

	mock.ExpectExec("UPDATE chat_conversations SET status").
		WithArgs("archived", "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdateStatus(context.Background(), "u-1", "archived"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPgConversationRepository_UpdateStatus_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgConversationRepository(mock)

	mock.ExpectExec("UPDATE chat_conversations SET status").
		WithArgs("archived", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), "missing", "archived")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
