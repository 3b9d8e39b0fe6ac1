// Package mailer composes transactional email for the portfolio and delivers
// it through an SMTP relay with a bounded retry policy.
package mailer

import "context"

// Message is a fully composed email ready for delivery.
type Message struct {
	FromName    string
	From        string
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Attachment is an in-memory file attached to a Message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Gateway delivers a single message. Implementations must be safe for
// concurrent use.
type Gateway interface {
	Send(ctx context.Context, msg *Message) error
}
