// Package overlay resolves tracked entity positions into both overlay
// marker placements and 3D engine positions through the single gridmap
// transform path, so the two consumers can never drift apart.
package overlay

import (
	"sync/atomic"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
)

// GridHolder publishes the current scan snapshot to transform callers.
// Snapshots are swapped wholesale: a reader that loaded a grid keeps a
// consistent view for the duration of its call even if a newer scan
// arrives mid-computation; the next call simply sees the new grid.
type GridHolder struct {
	current atomic.Pointer[gridmap.SampledGrid]
}

// Swap publishes a new snapshot, replacing the previous one.
func (h *GridHolder) Swap(g *gridmap.SampledGrid) {
	h.current.Store(g)
}

// Current returns the latest snapshot, or nil before the first scan.
func (h *GridHolder) Current() *gridmap.SampledGrid {
	return h.current.Load()
}
