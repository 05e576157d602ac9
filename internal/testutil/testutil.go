package testutil

import (
	"path/filepath"
	"testing"

	"github.com/pcranston/gridshift/internal/db"
)

// TempDB creates a temporary SQLite database for testing with the schema
// migrations applied.
func TempDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		database.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}
