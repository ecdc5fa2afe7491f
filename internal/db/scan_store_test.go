package db

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, database.MigrateUp("../../migrations"))
	return database
}

func testScanGrid(scene string) *gridmap.SampledGrid {
	return &gridmap.SampledGrid{
		Width:       3,
		Height:      2,
		XAxis:       gridmap.Axis{0, 5, 10},
		YAxis:       gridmap.Axis{0, 5},
		StepX:       5,
		StepY:       5,
		TotalPoints: 3,
		Scene:       scene,
		Points: []gridmap.GridPoint{
			{Row: 0, Col: 0, X: 0, Y: 0, ISSDbm: -92.5},
			{Row: 0, Col: 2, X: 10, Y: 0, ISSDbm: -71},
			{Row: 1, Col: 1, X: 5, Y: 5, ISSDbm: -84.25},
		},
	}
}

func TestScanStore_InsertAndGet(t *testing.T) {
	t.Parallel()

	store := NewScanStore(newTestDB(t))
	grid := testScanGrid("campus")

	scanID, err := store.InsertScan(grid)
	require.NoError(t, err)
	require.NotEmpty(t, scanID)

	stored, err := store.GetScan(scanID)
	require.NoError(t, err)
	assert.Equal(t, scanID, stored.ScanID)
	assert.NotZero(t, stored.CreatedAtNs)

	if diff := cmp.Diff(*grid, stored.Grid); diff != "" {
		t.Errorf("round-tripped grid mismatch (-want +got):\n%s", diff)
	}
}

func TestScanStore_InsertRejectsInvalidGrid(t *testing.T) {
	t.Parallel()

	store := NewScanStore(newTestDB(t))

	grid := testScanGrid("campus")
	grid.XAxis = gridmap.Axis{0, 5} // length no longer matches width

	_, err := store.InsertScan(grid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x_axis length")
}

func TestScanStore_LatestScan(t *testing.T) {
	t.Parallel()

	store := NewScanStore(newTestDB(t))

	latest, err := store.LatestScan("campus")
	require.NoError(t, err)
	assert.Nil(t, latest, "no scans yet")

	first, err := store.InsertScan(testScanGrid("campus"))
	require.NoError(t, err)
	second, err := store.InsertScan(testScanGrid("campus"))
	require.NoError(t, err)
	other, err := store.InsertScan(testScanGrid("hangar"))
	require.NoError(t, err)

	latest, err = store.LatestScan("campus")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second, latest.ScanID)
	assert.NotEqual(t, first, latest.ScanID)

	// Empty scene means latest across all scenes.
	latest, err = store.LatestScan("")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, other, latest.ScanID)
}

func TestScanStore_ListScans(t *testing.T) {
	t.Parallel()

	store := NewScanStore(newTestDB(t))

	for i := 0; i < 3; i++ {
		_, err := store.InsertScan(testScanGrid("campus"))
		require.NoError(t, err)
	}
	_, err := store.InsertScan(testScanGrid("hangar"))
	require.NoError(t, err)

	all, err := store.ListScans("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	campus, err := store.ListScans("campus", 0)
	require.NoError(t, err)
	assert.Len(t, campus, 3)
	for _, sum := range campus {
		assert.Equal(t, "campus", sum.Scene)
		assert.Equal(t, 3, sum.Width)
	}

	limited, err := store.ListScans("campus", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestScanStore_DeleteScan(t *testing.T) {
	t.Parallel()

	store := NewScanStore(newTestDB(t))

	scanID, err := store.InsertScan(testScanGrid("campus"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteScan(scanID))

	_, err = store.GetScan(scanID)
	assert.ErrorContains(t, err, "scan not found")

	err = store.DeleteScan(scanID)
	assert.ErrorContains(t, err, "scan not found")
}
