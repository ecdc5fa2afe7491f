package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../migrations"

// newBareDB opens a database without applying any migrations.
func newBareDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "migrate_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func tableExists(t *testing.T, database *DB, name string) bool {
	t.Helper()

	var n int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestMigrateVersion_FreshDatabase(t *testing.T) {
	database := newBareDB(t)

	version, dirty, err := database.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)
}

func TestMigrateUpDownRoundTrip(t *testing.T) {
	database := newBareDB(t)

	require.NoError(t, database.MigrateUp(migrationsDir))

	version, dirty, err := database.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	assert.True(t, tableExists(t, database, "scans"))
	assert.True(t, tableExists(t, database, "scan_points"))
	assert.True(t, tableExists(t, database, "scene_calibrations"))

	// Rolling back drops the schema and returns the version to zero.
	require.NoError(t, database.MigrateDown(migrationsDir))

	version, dirty, err = database.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)
	assert.False(t, tableExists(t, database, "scans"))
	assert.False(t, tableExists(t, database, "scan_points"))
	assert.False(t, tableExists(t, database, "scene_calibrations"))

	// The schema comes back clean after re-applying.
	require.NoError(t, database.MigrateUp(migrationsDir))
	assert.True(t, tableExists(t, database, "scans"))
}

func TestMigrateUp_Idempotent(t *testing.T) {
	database := newBareDB(t)

	require.NoError(t, database.MigrateUp(migrationsDir))
	require.NoError(t, database.MigrateUp(migrationsDir))

	version, _, err := database.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestMigrateDown_AfterRollback_StoreUnusable(t *testing.T) {
	database := newBareDB(t)
	require.NoError(t, database.MigrateUp(migrationsDir))
	require.NoError(t, database.MigrateDown(migrationsDir))

	// Writes into the rolled-back schema must surface as store errors,
	// not silent data loss.
	store := NewScanStore(database)
	_, err := store.GetScan("nope")
	require.Error(t, err)
	assert.NotErrorIs(t, err, sql.ErrNoRows)
}
