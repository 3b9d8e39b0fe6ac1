package model

import "time"

// Turn authors.
const (
	MessageTypeUser = "user"
	MessageTypeAI   = "ai"
)

// Conversation message statuses.
const (
	MessageStatusActive   = "active"
	MessageStatusArchived = "archived"
	MessageStatusDeleted  = "deleted"
)

// ValidMessageStatus reports whether s is a status a conversation message may take.
func ValidMessageStatus(s string) bool {
	switch s {
	case MessageStatusActive, MessageStatusArchived, MessageStatusDeleted:
		return true
	}
	return false
}

// ConversationMessage is one turn of a chatbot conversation. An "ai" turn
// references the "user" turn it answers through ContextMessageID.
type ConversationMessage struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	MessageType      string    `json:"message_type"`
	Content          string    `json:"message_content"`
	ContextMessageID string    `json:"context_message_id,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
