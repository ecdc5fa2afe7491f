package monitor

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
	"github.com/kenny223sns/sim-world-sub001/internal/overlay"
)

func testGrid() *gridmap.SampledGrid {
	return &gridmap.SampledGrid{
		Width:  3,
		Height: 2,
		XAxis:  gridmap.Axis{0, 5, 10},
		YAxis:  gridmap.Axis{0, 5},
		Scene:  "campus",
		Points: []gridmap.GridPoint{
			{Row: 0, Col: 0, X: 0, Y: 0, ISSDbm: -95},
			{Row: 1, Col: 2, X: 10, Y: 5, ISSDbm: -55},
		},
	}
}

func TestHeatmapHandler(t *testing.T) {
	t.Parallel()

	holder := &overlay.GridHolder{}
	handler := HeatmapHandler(holder)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/debug/heatmap", nil))
	assert.Equal(t, http.StatusConflict, rec.Code, "no grid yet")

	holder.Swap(testGrid())
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/debug/heatmap", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Interference Heat Map")
}

func TestSaveHeatmapPNG(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, SaveHeatmapPNG(testGrid(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveHeatmapPNG_EmptyGrid(t *testing.T) {
	t.Parallel()

	g := testGrid()
	g.Points = nil
	err := SaveHeatmapPNG(g, filepath.Join(t.TempDir(), "scan.png"))
	assert.ErrorContains(t, err, "no sampled points")
}

func TestScanGridAdapter(t *testing.T) {
	t.Parallel()

	sg := newScanGrid(testGrid())

	c, r := sg.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)

	assert.Equal(t, -95.0, sg.Z(0, 0))
	assert.Equal(t, -55.0, sg.Z(2, 1))
	assert.Equal(t, -95.0, sg.Z(1, 0), "uncovered cells take the scan minimum")
	assert.Equal(t, 10.0, sg.X(2))
	assert.Equal(t, 5.0, sg.Y(1))
}
