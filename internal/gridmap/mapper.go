package gridmap

// GridIndex is a discrete (row, col) position within a sampled grid,
// always clamped into range by the functions that produce it.
type GridIndex struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CanvasPosition is a position inside a 2D display area expressed as
// percentages of its width and height, origin at the top-left corner.
// Used for absolutely-positioned overlay markers.
type CanvasPosition struct {
	LeftPct float64 `json:"left_pct"`
	TopPct  float64 `json:"top_pct"`
}

// EnginePosition is a 3D coordinate in the rendering engine's
// convention: engine-y is vertical height, engine-x is world-x (east),
// engine-z is world-y (north).
type EnginePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// WorldToIndex resolves a world position to the nearest grid index,
// clamped into range. Column and row are resolved independently against
// their axes. Out-of-range positions clamp to the boundary cell; only
// an empty axis is an error.
func WorldToIndex(x, y float64, g *SampledGrid) (GridIndex, error) {
	col, err := NearestIndex(g.XAxis, x)
	if err != nil {
		return GridIndex{}, err
	}
	row, err := NearestIndex(g.YAxis, y)
	if err != nil {
		return GridIndex{}, err
	}
	// NearestIndex stays in range for well-formed axes; the clamp
	// guards against malformed custom axes supplied by callers.
	return GridIndex{
		Row: clampIndex(row, len(g.YAxis)),
		Col: clampIndex(col, len(g.XAxis)),
	}, nil
}

// IndexToWorld returns the world position of the cell centre at
// (row, col), clamping the index into range first. Composed with
// WorldToIndex this reconstructs the nearest sample centre, not the
// original query: the grid is a sampled approximation, and the
// round-trip error is bounded by half the local cell size.
func IndexToWorld(row, col int, g *SampledGrid) (x, y float64, err error) {
	if len(g.XAxis) == 0 || len(g.YAxis) == 0 {
		return 0, 0, &InvalidAxisError{Reason: "empty"}
	}
	row = clampIndex(row, len(g.YAxis))
	col = clampIndex(col, len(g.XAxis))
	return g.XAxis[col], g.YAxis[row], nil
}

// IndexToCanvasPercent maps a grid index to the centre of its cell in
// normalized percentage space. The +0.5 offset places the marker at the
// cell centre; without it every marker biases toward the top-left edge
// of its cell. A degenerate display area (zero or negative dimensions)
// maps everything to the origin.
func IndexToCanvasPercent(row, col, height, width int) CanvasPosition {
	if width <= 0 || height <= 0 {
		return CanvasPosition{}
	}
	row = clampIndex(row, height)
	col = clampIndex(col, width)
	return CanvasPosition{
		LeftPct: (float64(col) + 0.5) / float64(width) * 100,
		TopPct:  (float64(row) + 0.5) / float64(height) * 100,
	}
}

// WorldToCanvasPercent is the single entry point overlay components
// should use: WorldToIndex composed with IndexToCanvasPercent.
func WorldToCanvasPercent(x, y float64, g *SampledGrid) (CanvasPosition, error) {
	idx, err := WorldToIndex(x, y, g)
	if err != nil {
		return CanvasPosition{}, err
	}
	return IndexToCanvasPercent(idx.Row, idx.Col, g.Height, g.Width), nil
}

// WorldToEnginePosition remaps a world coordinate into the rendering
// engine's axes: world-z (altitude) becomes engine vertical and world-y
// (north) becomes engine depth. The remap is a hard convention of the
// consuming renderer; changing it requires coordinating with the
// scene-graph code.
func WorldToEnginePosition(x, y, z, scale float64) EnginePosition {
	return EnginePosition{
		X: x * scale,
		Y: z * scale,
		Z: y * scale,
	}
}
