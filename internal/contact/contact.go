// Package contact implements contact form submission and notification.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/rudimedia/site-api/internal/storage"
)

// notifyTimeout bounds the background email dispatch per submission.
const notifyTimeout = 30 * time.Second

// Store is the subset of storage needed for contact handling.
type Store interface {
	CreateContact(ctx context.Context, contact *storage.Contact) error
	ListContacts(ctx context.Context) ([]*storage.Contact, error)
}

// Mailer delivers the two emails for a submission: the notification to
// the site owner and the confirmation back to the sender. Outbound email
// is an external collaborator; implementations live behind this interface.
type Mailer interface {
	SendContactNotification(ctx context.Context, contact *storage.Contact) error
	SendContactConfirmation(ctx context.Context, contact *storage.Contact) error
}

// Service handles contact form submissions.
type Service struct {
	store  Store
	mailer Mailer
	logger *slog.Logger

	// dispatched is invoked after the background notification finishes.
	// Tests use it to synchronize; production leaves it nil.
	dispatched func()
}

// NewService creates a contact Service.
func NewService(store Store, mailer Mailer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, mailer: mailer, logger: logger}
}

// SubmitInput holds the caller-supplied contact form fields.
type SubmitInput struct {
	Name    string
	Email   string
	Message string
	Phone   string
}

// Validate checks required fields and the email address shape.
func (in SubmitInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("name is required")
	}
	if in.Message == "" {
		return fmt.Errorf("message is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// Submit stores the contact entry and dispatches the emails in the
// background. Email failures are logged, never surfaced to the submitter:
// the record is already persisted and the site owner can follow up.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*storage.Contact, error) {
	contact := &storage.Contact{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		Phone:     in.Phone,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	go s.notify(contact)

	return contact, nil
}

// List returns all contact entries, newest first. Admin only.
func (s *Service) List(ctx context.Context) ([]*storage.Contact, error) {
	return s.store.ListContacts(ctx)
}

func (s *Service) notify(contact *storage.Contact) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.mailer.SendContactNotification(ctx, contact); err != nil {
		s.logger.Error("failed to send contact notification", "contact_id", contact.ID, "error", err)
	}

	if err := s.mailer.SendContactConfirmation(ctx, contact); err != nil {
		s.logger.Error("failed to send contact confirmation", "contact_id", contact.ID, "error", err)
	}

	if s.dispatched != nil {
		s.dispatched()
	}
}
