package database

import (
	"path/filepath"
	"testing"

	"github.com/notespath/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	db, err := Connect(config.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, config.DriverSQLite))
	// Running again is a no-op
	require.NoError(t, RunMigrations(db, config.DriverSQLite))

	for _, table := range []string{"users", "user_tokens", "materials"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	db, err := Connect("postgres", "whatever")

	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestRunMigrations_UnsupportedDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	db, err := Connect(config.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, RunMigrations(db, "postgres"))
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("/tmp/notes.db")

	assert.Contains(t, dsn, "file:/tmp/notes.db?")
	assert.Contains(t, dsn, "foreign_keys%281%29")
}
