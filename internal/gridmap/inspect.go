package gridmap

import "math"

// DebugReport aggregates every transform applied to one world position
// against one grid. It is built purely from the public operations so it
// can never drift from what consumers actually see.
type DebugReport struct {
	Input          [2]float64     `json:"input"`
	GridIndex      GridIndex      `json:"grid_index"`
	Reconstructed  [2]float64     `json:"reconstructed"`
	CanvasPercent  CanvasPosition `json:"canvas_percent"`
	EnginePosition EnginePosition `json:"engine_position"`
	RoundTripError float64        `json:"round_trip_error"`
	InBounds       bool           `json:"in_bounds"`
}

// InspectTransform runs the full transform chain for a world position
// and reports every intermediate result plus the round-trip
// reconstruction error. Used by tests and by the debug overlay.
func InspectTransform(x, y float64, g *SampledGrid) (DebugReport, error) {
	idx, err := WorldToIndex(x, y, g)
	if err != nil {
		return DebugReport{}, err
	}
	rx, ry, err := IndexToWorld(idx.Row, idx.Col, g)
	if err != nil {
		return DebugReport{}, err
	}
	return DebugReport{
		Input:          [2]float64{x, y},
		GridIndex:      idx,
		Reconstructed:  [2]float64{rx, ry},
		CanvasPercent:  IndexToCanvasPercent(idx.Row, idx.Col, g.Height, g.Width),
		EnginePosition: WorldToEnginePosition(rx, ry, 0, 1.0),
		RoundTripError: math.Hypot(rx-x, ry-y),
		InBounds:       g.InBounds(x, y),
	}, nil
}

// AxisMetadata summarises the geometry of a grid's axes, derived purely
// from the first, last and first-two samples. Cell sizes are 0 when an
// axis has fewer than two samples.
type AxisMetadata struct {
	XIncreasing bool       `json:"x_increasing"`
	YIncreasing bool       `json:"y_increasing"`
	XRange      [2]float64 `json:"x_range"`
	YRange      [2]float64 `json:"y_range"`
	CellSizeX   float64    `json:"cell_size_x"`
	CellSizeY   float64    `json:"cell_size_y"`
}

// Metadata returns the axis summary for the grid.
func (g *SampledGrid) Metadata() AxisMetadata {
	return AxisMetadata{
		XIncreasing: g.XAxis.Increasing(),
		YIncreasing: g.YAxis.Increasing(),
		XRange:      axisRange(g.XAxis),
		YRange:      axisRange(g.YAxis),
		CellSizeX:   cellSize(g.XAxis),
		CellSizeY:   cellSize(g.YAxis),
	}
}

func axisRange(a Axis) [2]float64 {
	if len(a) == 0 {
		return [2]float64{}
	}
	return [2]float64{a[0], a[len(a)-1]}
}

func cellSize(a Axis) float64 {
	if len(a) < 2 {
		return 0
	}
	return math.Abs(a[1] - a[0])
}
