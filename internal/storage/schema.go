package storage

import (
	"database/sql"
	"fmt"
)

// InitSchema creates all required tables and indexes.
// This is idempotent - safe to call multiple times.
func InitSchema(db *sql.DB) error {
	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Execute all DDL statements
	ddlStatements := []string{
		// admins table: administrative accounts, username is case-sensitive unique
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Index on username for login lookups
		`CREATE INDEX IF NOT EXISTS idx_admins_username ON admins(username)`,

		// posts table: blog posts, slug uniqueness is enforced here so that
		// concurrent writers racing past the allocator's read still cannot
		// commit the same slug twice
		`CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			excerpt TEXT NOT NULL,
			author TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			published BOOLEAN NOT NULL DEFAULT TRUE,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		// Index on slug for public lookups
		`CREATE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug)`,

		// Index on created_at for list ordering
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at)`,

		// contacts table: submitted contact forms
		`CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			phone TEXT,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at)`,
	}

	// Execute each DDL statement
	for _, stmt := range ddlStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// MigrateSchema checks current schema version and applies migrations.
// For now there is only one schema version, so this simply initializes it.
func MigrateSchema(db *sql.DB) error {
	return InitSchema(db)
}
