package service

import (
	"context"

	"github.com/kikoi/portfolio-backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates msg, stores it and notifies the operator. Validation
	// failures return an *apperr.ValidationError before anything is written.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
}
