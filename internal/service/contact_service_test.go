package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/model"
)

func TestContactService_Submit_SavesAndNotifiesOnce(t *testing.T) {
	var saved *model.ContactMessage
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saved = msg
			msg.ID = "c-1"
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewContactService(repo, notifier)

	msg := &model.ContactMessage{Name: "A", Email: "a@b.com", Message: "hi"}
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected Save to be called")
	}
	if saved.Status != model.ContactStatusNew {
		t.Errorf("expected status=new, got %q", saved.Status)
	}
	if len(notifier.contacts) != 1 {
		t.Errorf("expected exactly 1 notification, got %d", len(notifier.contacts))
	}
}

func TestContactService_Submit_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		msg   model.ContactMessage
		field string
	}{
		{"no name", model.ContactMessage{Email: "a@b.com", Message: "hi"}, "name"},
		{"blank email", model.ContactMessage{Name: "A", Email: "  ", Message: "hi"}, "email"},
		{"no message", model.ContactMessage{Name: "A", Email: "a@b.com"}, "message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockContactRepository{
				saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
					t.Error("Save must not be called")
					return nil
				},
			}
			notifier := &mockNotifier{}
			svc := NewContactService(repo, notifier)

			msg := tc.msg
			err := svc.Submit(context.Background(), &msg)
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, ve.Field)
			}
			if len(notifier.contacts) != 0 {
				t.Error("no notification expected on validation failure")
			}
		})
	}
}

func TestContactService_Submit_InvalidEmail(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, &mockNotifier{})
	err := svc.Submit(context.Background(), &model.ContactMessage{Name: "A", Email: "not-an-email", Message: "hi"})
	if !apperr.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestContactService_Submit_RepoError(t *testing.T) {
	notifier := &mockNotifier{}
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return errors.New("connection refused")
		},
	}
	svc := NewContactService(repo, notifier)

	err := svc.Submit(context.Background(), &model.ContactMessage{Name: "A", Email: "a@b.com", Message: "hi"})
	var ue *apperr.UpstreamError
	if !errors.As(err, &ue) || ue.Gateway != "database" {
		t.Fatalf("expected database UpstreamError, got %v", err)
	}
	if len(notifier.contacts) != 0 {
		t.Error("no notification expected when the write fails")
	}
}

func TestContactService_Submit_NotifyError(t *testing.T) {
	notifier := &mockNotifier{
		notifyContactFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return apperr.Upstream("mail", "contact", errors.New("smtp down"))
		},
	}
	svc := NewContactService(&mockContactRepository{}, notifier)

	err := svc.Submit(context.Background(), &model.ContactMessage{Name: "A", Email: "a@b.com", Message: "hi"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestContactService_Submit_DuplicatesCreateTwoRows(t *testing.T) {
	var ids []string
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			msg.ID = fmt.Sprintf("c-%d", len(ids)+1)
			ids = append(ids, msg.ID)
			return nil
		},
	}
	svc := NewContactService(repo, &mockNotifier{})

	for i := 0; i < 2; i++ {
		msg := &model.ContactMessage{Name: "A", Email: "a@b.com", Message: "hi"}
		if err := svc.Submit(context.Background(), msg); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Errorf("expected two distinct rows, got %v", ids)
	}
}

func TestContactService_List_ClampsLimit(t *testing.T) {
	var got model.ContactListOptions
	repo := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
			got = opts
			return []*model.ContactMessage{}, nil
		},
	}
	svc := NewContactService(repo, &mockNotifier{})

	if _, err := svc.List(context.Background(), model.ContactListOptions{Limit: 10000, Offset: -5}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got.Limit != maxContactListLimit || got.Offset != 0 {
		t.Errorf("unexpected options %+v", got)
	}

	if _, err := svc.List(context.Background(), model.ContactListOptions{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got.Limit != defaultContactListLimit {
		t.Errorf("expected default limit, got %d", got.Limit)
	}
}
