package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateAdmin inserts a new admin account with the given bcrypt password hash.
// The account starts active.
// Returns ErrDuplicate if the username is already taken.
func (s *SQLiteStorage) CreateAdmin(ctx context.Context, username, passwordHash string) (*Admin, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO admins (username, password_hash, is_active) VALUES (?, ?, TRUE)",
		username, passwordHash)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert ID: %w", err)
	}

	return s.getAdmin(ctx, "id", id)
}

// GetAdminByUsername retrieves an admin by username. The lookup is
// case-sensitive: usernames differing only in case are distinct accounts.
// Returns ErrNotFound if no such admin exists.
func (s *SQLiteStorage) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	return s.getAdmin(ctx, "username", username)
}

// UpdateAdminPassword replaces the stored password hash for an admin.
// Returns ErrNotFound if the admin doesn't exist.
func (s *SQLiteStorage) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE admins SET password_hash = ? WHERE id = ?",
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}

	return requireRowAffected(result)
}

// SetAdminActive enables or disables an admin account. Disabled accounts
// cannot log in and their outstanding tokens stop authorizing requests.
// Returns ErrNotFound if the admin doesn't exist.
func (s *SQLiteStorage) SetAdminActive(ctx context.Context, id int64, active bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE admins SET is_active = ? WHERE id = ?",
		active, id)
	if err != nil {
		return fmt.Errorf("failed to update admin state: %w", err)
	}

	return requireRowAffected(result)
}

// getAdmin fetches a single admin row by the given column.
func (s *SQLiteStorage) getAdmin(ctx context.Context, column string, value any) (*Admin, error) {
	var a Admin

	query := "SELECT id, username, password_hash, is_active, created_at FROM admins WHERE " + column + " = ?"
	err := s.db.QueryRowContext(ctx, query, value).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsActive, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &a, nil
}

// requireRowAffected converts a zero-row update into ErrNotFound.
func requireRowAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
