package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateContact inserts a submitted contact form entry.
func (s *SQLiteStorage) CreateContact(ctx context.Context, contact *Contact) error {
	var phone any
	if contact.Phone != "" {
		phone = contact.Phone
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contacts (id, name, email, message, phone, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		contact.ID, contact.Name, contact.Email, contact.Message, phone, contact.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// ListContacts returns all contact entries ordered newest first.
// Returns empty slice if no contacts exist.
func (s *SQLiteStorage) ListContacts(ctx context.Context) ([]*Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, message, phone, created_at FROM contacts ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var contacts []*Contact

	for rows.Next() {
		var c Contact
		var phone sql.NullString

		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}

		c.Phone = phone.String
		contacts = append(contacts, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	// Return empty slice instead of nil
	if contacts == nil {
		contacts = make([]*Contact, 0)
	}

	return contacts, nil
}
