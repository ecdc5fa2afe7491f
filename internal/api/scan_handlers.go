package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kenny223sns/sim-world-sub001/internal/db"
	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
)

// handleScans handles /api/scans: POST ingests a scan snapshot, GET
// lists stored scan summaries.
func (s *Server) handleScans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleIngestScan(w, r)
	case http.MethodGet:
		s.handleListScans(w, r)
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleIngestScan accepts the scan wire format, validates it, persists
// it, and publishes it as the current grid.
func (s *Server) handleIngestScan(w http.ResponseWriter, r *http.Request) {
	var grid gridmap.SampledGrid
	if err := json.NewDecoder(r.Body).Decode(&grid); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode scan: %v", err))
		return
	}

	if err := grid.Validate(); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	scanID, err := s.scans.InsertScan(&grid)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("store scan: %v", err))
		return
	}

	// Publish after the store accepts it so a rejected scan never
	// becomes the current grid.
	s.holder.Swap(&grid)

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"scan_id": scanID,
		"stats":   grid.SampleStats(),
	})
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 {
			s.writeJSONError(w, http.StatusBadRequest, "invalid 'limit' parameter")
			return
		}
		limit = v
	}

	summaries, err := s.scans.ListScans(r.URL.Query().Get("scene"), limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("list scans: %v", err))
		return
	}
	if summaries == nil {
		summaries = []db.ScanSummary{}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

// handleLatestScan returns the most recent stored scan, optionally
// filtered by scene.
func (s *Server) handleLatestScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stored, err := s.scans.LatestScan(r.URL.Query().Get("scene"))
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("latest scan: %v", err))
		return
	}
	if stored == nil {
		s.writeJSONError(w, http.StatusNotFound, "no scans recorded")
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}

// handleScanByID handles /api/scans/{scan_id}: GET and DELETE.
func (s *Server) handleScanByID(w http.ResponseWriter, r *http.Request) {
	scanID := strings.TrimPrefix(r.URL.Path, "/api/scans/")
	if scanID == "" || strings.Contains(scanID, "/") {
		s.writeJSONError(w, http.StatusBadRequest, "missing scan_id in path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		stored, err := s.scans.GetScan(scanID)
		if err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, stored)
	case http.MethodDelete:
		if err := s.scans.DeleteScan(scanID); err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"deleted": scanID})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
