package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/kenny223sns/sim-world-sub001/internal/overlay"
)

// handleMarkers handles /api/markers: POST upserts a tracked marker.
func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var m overlay.Marker
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode marker: %v", err))
		return
	}
	for _, v := range []float64{m.XM, m.YM, m.ZM} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.writeJSONError(w, http.StatusBadRequest, "marker position must be finite")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, s.markers.Upsert(m))
}

// handleMarkerByID handles DELETE /api/markers/{id}.
func (s *Server) handleMarkerByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/markers/")
	if id == "" || strings.Contains(id, "/") {
		s.writeJSONError(w, http.StatusBadRequest, "missing marker id in path")
		return
	}

	if r.Method != http.MethodDelete {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.markers.Remove(id); err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handlePlacements resolves every tracked marker against the current
// grid: the per-frame call the overlay and 3D scene poll.
func (s *Server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	placements, err := s.markers.Place()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if placements == nil {
		placements = []overlay.Placement{}
	}
	s.writeJSON(w, http.StatusOK, placements)
}
