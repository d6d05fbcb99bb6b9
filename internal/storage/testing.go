package storage

import (
	"path/filepath"
	"testing"
)

// NewTestStore opens a migrated store backed by a temp-file database.
// The database is removed with the test's temp dir.
func NewTestStore(t *testing.T) *Store {
	t.Helper()
	config := DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	config.AutoMigrate = true
	db, err := Open(config)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}
