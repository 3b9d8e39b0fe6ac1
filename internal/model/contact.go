package model

import "time"

// Contact message statuses.
const (
	ContactStatusNew      = "new"
	ContactStatusUnread   = "unread"
	ContactStatusArchived = "archived"
)

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // "new" | "unread" | "archived"
	CreatedAt time.Time `json:"created_at"`
}

// ContactListOptions carries filter and pagination parameters for listing contact messages.
type ContactListOptions struct {
	// Status filters by message status. Empty string and "all" return all messages.
	Status string
	Limit  int
	Offset int
}
