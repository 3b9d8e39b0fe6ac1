package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kikoi/portfolio-backend/internal/model"
)

// ConversationRepository persists chatbot turns.
type ConversationRepository interface {
	Insert(ctx context.Context, msg *model.ConversationMessage) error
	ListByUser(ctx context.Context, userID string) ([]*model.ConversationMessage, error)
	ListByStatus(ctx context.Context, status string) ([]*model.ConversationMessage, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PgConversationRepository stores turns in the chat_conversations table.
type PgConversationRepository struct {
	db Querier
}

// NewPgConversationRepository creates a PgConversationRepository backed by the given pool.
func NewPgConversationRepository(db Querier) *PgConversationRepository {
	return &PgConversationRepository{db: db}
}

var _ ConversationRepository = (*PgConversationRepository)(nil)

const conversationColumns = `id, user_id, message_type, message_content,
	COALESCE(context_message_id::text, ''), status, created_at`

// Insert writes a single turn and populates msg.ID and msg.CreatedAt.
func (r *PgConversationRepository) Insert(ctx context.Context, msg *model.ConversationMessage) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO chat_conversations (user_id, message_type, message_content, context_message_id, status)
		 VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5)
		 RETURNING id, created_at`,
		msg.UserID, msg.MessageType, msg.Content, msg.ContextMessageID, msg.Status,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// ListByUser returns every turn for userID, oldest first. seq breaks ties
// between turns written within the same clock tick.
func (r *PgConversationRepository) ListByUser(ctx context.Context, userID string) ([]*model.ConversationMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+conversationColumns+`
		 FROM chat_conversations
		 WHERE user_id = $1
		 ORDER BY created_at ASC, seq ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	return scanConversation(rows)
}

// ListByStatus returns every turn with the given status, newest first.
func (r *PgConversationRepository) ListByStatus(ctx context.Context, status string) ([]*model.ConversationMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+conversationColumns+`
		 FROM chat_conversations
		 WHERE status = $1
		 ORDER BY created_at DESC, seq DESC`,
		status)
	if err != nil {
		return nil, err
	}
	return scanConversation(rows)
}

// UpdateStatus changes the status of one turn. Returns ErrNotFound if no row matched.
func (r *PgConversationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE chat_conversations SET status = $1 WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanConversation(rows pgx.Rows) ([]*model.ConversationMessage, error) {
	defer rows.Close()

	messages := []*model.ConversationMessage{}
	for rows.Next() {
		var m model.ConversationMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.MessageType, &m.Content, &m.ContextMessageID, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
