package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory test database with migrations applied
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", "documents").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "documents table not found")

	// Running again is a no-op
	require.NoError(t, db.RunMigrations())
}

// TestDocumentNameCheck verifies only known documents can be stored
func TestDocumentNameCheck(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO documents (name, body) VALUES (?, ?)`, "projects", "[]")
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO documents (name, body) VALUES (?, ?)`, "users", "[]")
	require.Error(t, err)
}
