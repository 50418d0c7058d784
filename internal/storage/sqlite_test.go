package storage

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestStorage creates an in-memory SQLite storage with the full schema.
func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// Every pool connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	s := NewSQLiteStorage(db)
	t.Cleanup(func() { _ = s.Close() })

	return s
}
