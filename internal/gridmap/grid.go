package gridmap

import (
	"fmt"
	"math"
)

// GridPoint is one sampled cell of an interference scan: its discrete
// grid index, the reconstructed world position of the cell centre, and
// the sampled signal strength.
type GridPoint struct {
	Row    int     `json:"i"`
	Col    int     `json:"j"`
	X      float64 `json:"x_m"`
	Y      float64 `json:"y_m"`
	ISSDbm float64 `json:"iss_dbm"`
}

// SampledGrid is the immutable snapshot of one scan: the axis sample
// positions and the sparse set of sampled points. Grids are replaced
// wholesale when a new scan arrives, never mutated in place.
type SampledGrid struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	XAxis       Axis        `json:"x_axis"`
	YAxis       Axis        `json:"y_axis"`
	Points      []GridPoint `json:"points"`
	TotalPoints int         `json:"total_points"`
	StepX       float64     `json:"step_x"`
	StepY       float64     `json:"step_y"`
	Scene       string      `json:"scene"`
}

// Validate checks the structural invariants of a scan snapshot: axis
// lengths match the declared dimensions, both axes are strictly
// monotonic, and every point index is inside the grid.
func (g *SampledGrid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.XAxis) != g.Width {
		return fmt.Errorf("x_axis length %d does not match width %d", len(g.XAxis), g.Width)
	}
	if len(g.YAxis) != g.Height {
		return fmt.Errorf("y_axis length %d does not match height %d", len(g.YAxis), g.Height)
	}
	if err := g.XAxis.Validate(); err != nil {
		return fmt.Errorf("x_axis: %w", err)
	}
	if err := g.YAxis.Validate(); err != nil {
		return fmt.Errorf("y_axis: %w", err)
	}
	for n, p := range g.Points {
		if p.Row < 0 || p.Row >= g.Height || p.Col < 0 || p.Col >= g.Width {
			return fmt.Errorf("point %d index (%d,%d) outside %dx%d grid", n, p.Row, p.Col, g.Width, g.Height)
		}
		if math.IsNaN(p.ISSDbm) || math.IsInf(p.ISSDbm, 0) {
			return fmt.Errorf("point %d has non-finite sample %v", n, p.ISSDbm)
		}
	}
	return nil
}

// InBounds reports whether (x, y) lies within the world-space rectangle
// covered by the grid's axes.
func (g *SampledGrid) InBounds(x, y float64) bool {
	return inAxisRange(g.XAxis, x) && inAxisRange(g.YAxis, y)
}

func inAxisRange(a Axis, v float64) bool {
	if len(a) == 0 {
		return false
	}
	lo, hi := a[0], a[len(a)-1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}
