package contact

import (
	"context"
	"log/slog"

	"github.com/rudimedia/site-api/internal/storage"
)

// LogMailer is a Mailer that only logs. Used in development and as the
// default when no email provider is configured.
type LogMailer struct {
	logger *slog.Logger
	sender string
	owner  string
}

// NewLogMailer creates a LogMailer. sender is the From address and owner
// the recipient of submission notifications.
func NewLogMailer(logger *slog.Logger, sender, owner string) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger, sender: sender, owner: owner}
}

// SendContactNotification logs the would-be notification email.
func (m *LogMailer) SendContactNotification(_ context.Context, contact *storage.Contact) error {
	m.logger.Info("contact notification (email delivery not configured)",
		"contact_id", contact.ID,
		"name", contact.Name,
		"from", m.sender,
		"to", m.owner,
	)
	return nil
}

// SendContactConfirmation logs the would-be confirmation email.
func (m *LogMailer) SendContactConfirmation(_ context.Context, contact *storage.Contact) error {
	m.logger.Info("contact confirmation (email delivery not configured)",
		"contact_id", contact.ID,
		"from", m.sender,
	)
	return nil
}
