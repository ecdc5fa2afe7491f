// Package gridmap implements the coordinate transforms between the
// sampled world-space grid produced by interference scans, discrete grid
// indices, normalized canvas percentages for 2D overlay markers, and the
// 3D rendering engine's axis convention.
//
// Every operation is a pure function over immutable inputs. Grids are
// swapped wholesale between scans, never mutated, so callers may invoke
// these transforms from render callbacks without locking.
package gridmap

import (
	"fmt"
	"math"
)

// Axis is an ordered sequence of sample coordinates in meters along one
// grid dimension. It must be strictly monotonic (increasing or
// decreasing) and non-empty.
type Axis []float64

// InvalidAxisError reports a structurally invalid axis: empty, or not
// strictly monotonic where monotonicity is required.
type InvalidAxisError struct {
	Reason string
}

func (e *InvalidAxisError) Error() string {
	return fmt.Sprintf("invalid axis: %s", e.Reason)
}

// Validate checks that the axis is non-empty and strictly monotonic.
func (a Axis) Validate() error {
	if len(a) == 0 {
		return &InvalidAxisError{Reason: "empty"}
	}
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidAxisError{Reason: fmt.Sprintf("non-finite sample %v", v)}
		}
	}
	if len(a) < 2 {
		return nil
	}
	increasing := a[1] > a[0]
	for i := 1; i < len(a); i++ {
		if increasing && a[i] <= a[i-1] {
			return &InvalidAxisError{Reason: fmt.Sprintf("not strictly increasing at index %d", i)}
		}
		if !increasing && a[i] >= a[i-1] {
			return &InvalidAxisError{Reason: fmt.Sprintf("not strictly decreasing at index %d", i)}
		}
	}
	return nil
}

// Increasing reports whether the axis runs low-to-high. A single-sample
// axis is treated as increasing.
func (a Axis) Increasing() bool {
	return len(a) < 2 || a[1] > a[0]
}

// NearestIndex returns the index whose sample is closest to value.
// The search is a binary narrowing over the monotonic axis, O(log n).
// When two samples are exactly equidistant from value the lower index
// wins. Returns an InvalidAxisError for an empty axis; out-of-range
// values resolve to the first or last index.
func NearestIndex(axis Axis, value float64) (int, error) {
	if len(axis) == 0 {
		return 0, &InvalidAxisError{Reason: "empty"}
	}

	lo, hi := 0, len(axis)-1
	increasing := axis.Increasing()

	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if (increasing && axis[mid] < value) || (!increasing && axis[mid] > value) {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Two candidates remain; strict < keeps the lower index on ties.
	if math.Abs(axis[hi]-value) < math.Abs(axis[lo]-value) {
		return hi, nil
	}
	return lo, nil
}

// clampIndex restricts i to [0, n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
