package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
)

// parseCoord parses a required finite float query parameter.
func parseCoord(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %q parameter", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %q parameter: %v", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q must be finite", name)
	}
	return v, nil
}

// currentGrid returns the published grid, writing a 409 when no scan
// has arrived yet.
func (s *Server) currentGrid(w http.ResponseWriter) *gridmap.SampledGrid {
	grid := s.holder.Current()
	if grid == nil {
		s.writeJSONError(w, http.StatusConflict, "no scan loaded yet")
	}
	return grid
}

// handleInspect returns the full debug report for a world position
// against the current grid. Out-of-range positions clamp and report
// in_bounds=false rather than failing.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	x, err := parseCoord(r, "x")
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseCoord(r, "y")
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	grid := s.currentGrid(w)
	if grid == nil {
		return
	}

	report, err := gridmap.InspectTransform(x, y, grid)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// handleCanvas returns the overlay canvas percentage for a world
// position.
func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	x, err := parseCoord(r, "x")
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseCoord(r, "y")
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	grid := s.currentGrid(w)
	if grid == nil {
		return
	}

	pos, err := gridmap.WorldToCanvasPercent(x, y, grid)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, pos)
}

// handleEngine returns the 3D engine position for a world coordinate.
// Works without a loaded grid: the remap is grid-independent.
func (s *Server) handleEngine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	x, err := parseCoord(r, "x")
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseCoord(r, "y")
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	z := 0.0
	if r.URL.Query().Get("z") != "" {
		if z, err = parseCoord(r, "z"); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	scale := 1.0
	if r.URL.Query().Get("scale") != "" {
		if scale, err = parseCoord(r, "scale"); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	s.writeJSON(w, http.StatusOK, gridmap.WorldToEnginePosition(x, y, z, scale))
}

// handleMetadata returns the axis metadata and sample statistics of the
// current grid.
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	grid := s.currentGrid(w)
	if grid == nil {
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":    grid.Scene,
		"metadata": grid.Metadata(),
		"stats":    grid.SampleStats(),
	})
}
