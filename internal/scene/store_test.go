package scene

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenny223sns/sim-world-sub001/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.MigrateUp("../../migrations"))

	return NewStore(database.DB)
}

func TestStore_UpsertGetDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	cal := &Calibration{
		Scene:          "campus",
		OriginXM:       -12,
		OriginYM:       7,
		PixelsPerMeter: 4.5,
		FlipY:          true,
		RotationDeg:    15,
	}
	require.NoError(t, store.Upsert(cal))

	got, err := store.Get("campus")
	require.NoError(t, err)
	assert.Equal(t, cal, got)

	// Upsert replaces in place.
	cal.PixelsPerMeter = 9
	require.NoError(t, store.Upsert(cal))
	got, err = store.Get("campus")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.PixelsPerMeter)

	require.NoError(t, store.Delete("campus"))
	_, err = store.Get("campus")
	assert.ErrorContains(t, err, "calibration not found")
	assert.ErrorContains(t, store.Delete("campus"), "calibration not found")
}

func TestStore_UpsertRejectsInvalid(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	err := store.Upsert(&Calibration{Scene: "bad", PixelsPerMeter: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pixels_per_meter")
}

func TestStore_List(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Upsert(&Calibration{Scene: "b", PixelsPerMeter: 1}))
	require.NoError(t, store.Upsert(&Calibration{Scene: "a", PixelsPerMeter: 2}))

	cals, err := store.List()
	require.NoError(t, err)
	require.Len(t, cals, 2)
	assert.Equal(t, "a", cals[0].Scene, "ordered by scene name")
	assert.Equal(t, "b", cals[1].Scene)
}

func TestStore_SeedDefaults(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	// A runtime edit exists before seeding.
	require.NoError(t, store.Upsert(&Calibration{Scene: "campus", PixelsPerMeter: 99}))

	defaults := map[string]Calibration{
		"campus": {Scene: "campus", PixelsPerMeter: 4},
		"hangar": {Scene: "hangar", PixelsPerMeter: 15},
	}
	require.NoError(t, store.SeedDefaults(defaults))

	campus, err := store.Get("campus")
	require.NoError(t, err)
	assert.Equal(t, 99.0, campus.PixelsPerMeter, "seeding must not clobber runtime edits")

	hangar, err := store.Get("hangar")
	require.NoError(t, err)
	assert.Equal(t, 15.0, hangar.PixelsPerMeter)
}
