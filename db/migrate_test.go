package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenWithMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenWithMigrations(dbPath, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"schema_migrations", "snapshots", "snapshot_documents"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db, nil))

	var versions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 2, versions)
	require.NoError(t, db.Close())

	// reopening applies nothing new
	db, err = OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 2, versions)
}

func TestMigrateInMemory(t *testing.T) {
	db, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db, nil))
	_, err = db.Exec("INSERT INTO snapshots (id, scope, type_count, created_at) VALUES ('a', 'app', 0, CURRENT_TIMESTAMP)")
	assert.NoError(t, err)
}

func TestPending(t *testing.T) {
	db, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	pending, err := Pending(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"000_create_schema_migrations.sql", "001_create_snapshots.sql"}, pending)

	applied, err := AppliedVersions(db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	require.NoError(t, Migrate(db, zaptest.NewLogger(t).Sugar()))

	pending, err = Pending(db)
	require.NoError(t, err)
	assert.Empty(t, pending)

	applied, err = AppliedVersions(db)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"000": true, "001": true}, applied)
}
