// Package scene maps pointer positions on a rendered floor-plan image
// to world coordinates and back, using a per-scene calibration record.
package scene

import (
	"fmt"
	"math"
)

// Calibration defines the pixel/world relationship for one named
// scene's floor-plan image: where the world origin sits in the image,
// how many pixels span a meter, and the optional flip/rotation applied
// when the plan was drawn in a different orientation than the world
// grid.
type Calibration struct {
	Scene          string  `json:"scene" yaml:"scene"`
	OriginXM       float64 `json:"origin_x_m" yaml:"origin_x_m"`
	OriginYM       float64 `json:"origin_y_m" yaml:"origin_y_m"`
	PixelsPerMeter float64 `json:"pixels_per_meter" yaml:"pixels_per_meter"`
	FlipY          bool    `json:"flip_y" yaml:"flip_y"`
	RotationDeg    float64 `json:"rotation_deg" yaml:"rotation_deg"`
}

// Validate checks the calibration's structural invariants.
func (c *Calibration) Validate() error {
	if c.PixelsPerMeter <= 0 {
		return fmt.Errorf("scene %q: pixels_per_meter must be positive, got %v", c.Scene, c.PixelsPerMeter)
	}
	for _, v := range []float64{c.OriginXM, c.OriginYM, c.PixelsPerMeter, c.RotationDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("scene %q: non-finite calibration value", c.Scene)
		}
	}
	return nil
}

// DisplayGeometry carries the rendered image's displayed size alongside
// its natural (source) pixel size. Both are needed because the browser
// scales the image to fit its container. A zero value means the image
// has not finished loading.
type DisplayGeometry struct {
	DisplayedW float64 `json:"displayed_w"`
	DisplayedH float64 `json:"displayed_h"`
	NaturalW   float64 `json:"natural_w"`
	NaturalH   float64 `json:"natural_h"`
}

// Known reports whether both sizes are available yet.
func (g DisplayGeometry) Known() bool {
	return g.DisplayedW > 0 && g.DisplayedH > 0 && g.NaturalW > 0 && g.NaturalH > 0
}

// WorldPoint is a position in world meters.
type WorldPoint struct {
	XM float64 `json:"x_m"`
	YM float64 `json:"y_m"`
}

// PixelPoint is a position in displayed-image pixels, origin top-left.
type PixelPoint struct {
	PX float64 `json:"px"`
	PY float64 `json:"py"`
}

// PixelToWorld converts a pointer position on the displayed image into
// world meters. Returns nil while the image geometry is unknown; that
// is a normal transient during image load and the caller should retry
// on the next render. Out-of-image positions are converted as-is, not
// clamped: the floor plan may legitimately extend past the sampled
// region.
func (c *Calibration) PixelToWorld(p PixelPoint, geom DisplayGeometry) *WorldPoint {
	if !geom.Known() {
		return nil
	}

	// Displayed pixels to natural pixels, per axis.
	nx := p.PX * geom.NaturalW / geom.DisplayedW
	ny := p.PY * geom.NaturalH / geom.DisplayedH

	// Natural pixels to meters in the image frame. Image y grows
	// downward; FlipY maps it onto a north-up world axis.
	mx := nx / c.PixelsPerMeter
	my := ny / c.PixelsPerMeter
	if c.FlipY {
		my = (geom.NaturalH - ny) / c.PixelsPerMeter
	}

	// Rotate about the scene origin, then translate.
	sin, cos := math.Sincos(c.RotationDeg * math.Pi / 180)
	return &WorldPoint{
		XM: c.OriginXM + mx*cos - my*sin,
		YM: c.OriginYM + mx*sin + my*cos,
	}
}

// WorldToPixel is the inverse of PixelToWorld: world meters to a
// displayed-image pixel position. Returns nil while the image geometry
// is unknown.
func (c *Calibration) WorldToPixel(w WorldPoint, geom DisplayGeometry) *PixelPoint {
	if !geom.Known() {
		return nil
	}

	// Undo translation, then rotation.
	dx := w.XM - c.OriginXM
	dy := w.YM - c.OriginYM
	sin, cos := math.Sincos(-c.RotationDeg * math.Pi / 180)
	mx := dx*cos - dy*sin
	my := dx*sin + dy*cos

	// Meters to natural pixels.
	nx := mx * c.PixelsPerMeter
	ny := my * c.PixelsPerMeter
	if c.FlipY {
		ny = geom.NaturalH - ny
	}

	// Natural pixels to displayed pixels.
	return &PixelPoint{
		PX: nx * geom.DisplayedW / geom.NaturalW,
		PY: ny * geom.DisplayedH / geom.NaturalH,
	}
}
