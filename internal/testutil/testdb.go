package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/carewise/internal/db"
)

// NewTestDB returns a migrated in-memory history database that is closed
// with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}
