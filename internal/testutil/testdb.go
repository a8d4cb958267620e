package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tdee/internal/db"
)

// NewTestDB opens a migrated in-memory database that lives for the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openForTest(t, db.MemoryPath)
}

// NewFileTestDB opens a migrated WAL database under t.TempDir and returns
// its path so a test can reopen it.
func NewFileTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tdee.db")
	return openForTest(t, path), path
}

func openForTest(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
