package monitor

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
)

// scanGrid adapts a SampledGrid to the plotter's dense grid interface.
// Cells the sparse scan did not cover take the scan's minimum value so
// they read as background in the plot.
type scanGrid struct {
	grid   *gridmap.SampledGrid
	values []float64
}

func newScanGrid(g *gridmap.SampledGrid) *scanGrid {
	floor := g.SampleStats().MinDbm
	values := make([]float64, g.Width*g.Height)
	for i := range values {
		values[i] = floor
	}
	for _, p := range g.Points {
		values[p.Row*g.Width+p.Col] = p.ISSDbm
	}
	return &scanGrid{grid: g, values: values}
}

func (s *scanGrid) Dims() (c, r int)   { return s.grid.Width, s.grid.Height }
func (s *scanGrid) Z(c, r int) float64 { return s.values[r*s.grid.Width+c] }
func (s *scanGrid) X(c int) float64    { return s.grid.XAxis[c] }
func (s *scanGrid) Y(r int) float64    { return s.grid.YAxis[r] }

// SaveHeatmapPNG writes a PNG heat map of the grid to path. The output
// format follows the file extension, so .png, .svg and .pdf all work.
func SaveHeatmapPNG(g *gridmap.SampledGrid, path string) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("plot grid: %w", err)
	}
	if len(g.Points) == 0 {
		return fmt.Errorf("plot grid: no sampled points")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Interference map: %s", g.Scene)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	levels := 12
	stats := g.SampleStats()
	if math.Abs(stats.MaxDbm-stats.MinDbm) < 1e-9 {
		levels = 1
	}
	hm := plotter.NewHeatMap(newScanGrid(g), palette.Heat(levels, 1))
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
