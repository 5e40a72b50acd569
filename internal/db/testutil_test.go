package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func requireSeeded(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := SeedDefaultUsers(db); err != nil {
		t.Fatalf("seed users: %v", err)
	}
}
