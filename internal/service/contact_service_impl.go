package service

import (
	"context"
	"strings"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/model"
	"github.com/kikoi/portfolio-backend/internal/repository"
)

const (
	defaultContactListLimit = 50
	maxContactListLimit     = 200
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier ContactNotifier
}

// NewContactService creates a ContactService backed by the given repository
// and notifier.
func NewContactService(repo repository.ContactRepository, notifier ContactNotifier) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier}
}

// Submit stores a new contact message with status "new" and sends exactly
// one operator notification.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)

	if err := requireFields(
		requiredField{"name", msg.Name},
		requiredField{"email", msg.Email},
		requiredField{"message", msg.Message},
	); err != nil {
		return err
	}
	if err := validEmail("email", msg.Email); err != nil {
		return err
	}

	msg.Status = model.ContactStatusNew
	if err := s.repo.Save(ctx, msg); err != nil {
		return apperr.Upstream("database", "save contact message", err)
	}
	return s.notifier.NotifyContact(ctx, msg)
}

// List returns contact messages according to the given filter/pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultContactListLimit
	}
	if opts.Limit > maxContactListLimit {
		opts.Limit = maxContactListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	msgs, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, apperr.Upstream("database", "list contact messages", err)
	}
	return msgs, nil
}
