package overlay

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
)

// Marker is a tracked entity whose world position needs both a 2D
// overlay placement and a 3D engine position.
type Marker struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	XM    float64 `json:"x_m"`
	YM    float64 `json:"y_m"`
	ZM    float64 `json:"z_m"`
}

// Placement is a marker resolved against the current grid: the overlay
// percentage position and the engine-space position, derived from the
// same world coordinate through the same transform path.
type Placement struct {
	Marker   Marker                 `json:"marker"`
	Canvas   gridmap.CanvasPosition `json:"canvas"`
	Engine   gridmap.EnginePosition `json:"engine"`
	InBounds bool                   `json:"in_bounds"`
}

// MarkerSet tracks entity positions and resolves them against the grid
// held by a GridHolder.
type MarkerSet struct {
	mu      sync.RWMutex
	markers map[string]Marker

	holder      *GridHolder
	engineScale float64
}

// NewMarkerSet creates a MarkerSet over the given holder. engineScale
// is the uniform world-to-engine scale factor; pass 1.0 for unscaled
// scenes.
func NewMarkerSet(holder *GridHolder, engineScale float64) *MarkerSet {
	if engineScale == 0 {
		engineScale = 1.0
	}
	return &MarkerSet{
		markers:     make(map[string]Marker),
		holder:      holder,
		engineScale: engineScale,
	}
}

// Upsert records a marker position, generating an ID when absent, and
// returns the stored marker.
func (s *MarkerSet) Upsert(m Marker) Marker {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	s.mu.Lock()
	s.markers[m.ID] = m
	s.mu.Unlock()
	return m
}

// Remove deletes a marker by ID.
func (s *MarkerSet) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markers[id]; !ok {
		return fmt.Errorf("marker not found: %s", id)
	}
	delete(s.markers, id)
	return nil
}

// Place resolves every marker against the current grid snapshot,
// ordered by marker ID. Returns nil before the first scan arrives.
func (s *MarkerSet) Place() ([]Placement, error) {
	grid := s.holder.Current()
	if grid == nil {
		return nil, nil
	}

	s.mu.RLock()
	markers := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		markers = append(markers, m)
	}
	s.mu.RUnlock()

	sort.Slice(markers, func(i, j int) bool { return markers[i].ID < markers[j].ID })

	placements := make([]Placement, 0, len(markers))
	for _, m := range markers {
		canvas, err := gridmap.WorldToCanvasPercent(m.XM, m.YM, grid)
		if err != nil {
			return nil, fmt.Errorf("place marker %s: %w", m.ID, err)
		}
		placements = append(placements, Placement{
			Marker:   m,
			Canvas:   canvas,
			Engine:   gridmap.WorldToEnginePosition(m.XM, m.YM, m.ZM, s.engineScale),
			InBounds: grid.InBounds(m.XM, m.YM),
		})
	}
	return placements, nil
}
