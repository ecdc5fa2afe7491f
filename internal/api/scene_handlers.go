package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kenny223sns/sim-world-sub001/internal/scene"
)

// Scene calibration routes:
//
//   GET    /api/scenes                         list calibrations
//   POST   /api/scenes                         create/replace a calibration
//   GET    /api/scenes/{name}                  get one calibration
//   PUT    /api/scenes/{name}                  update a calibration
//   DELETE /api/scenes/{name}                  delete a calibration
//   POST   /api/scenes/{name}/pixel-to-world   run the pixel transform
//   POST   /api/scenes/{name}/world-to-pixel   run the inverse transform

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cals, err := s.scenes.List()
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if cals == nil {
			cals = []*scene.Calibration{}
		}
		s.writeJSON(w, http.StatusOK, cals)
	case http.MethodPost:
		var cal scene.Calibration
		if err := json.NewDecoder(r.Body).Decode(&cal); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode calibration: %v", err))
			return
		}
		if cal.Scene == "" {
			s.writeJSONError(w, http.StatusBadRequest, "missing scene name")
			return
		}
		if err := s.scenes.Upsert(&cal); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, cal)
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleSceneByName(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/scenes/")
	name, action := rest, ""
	if i := strings.Index(rest, "/"); i >= 0 {
		name, action = rest[:i], rest[i+1:]
	}
	if name == "" {
		s.writeJSONError(w, http.StatusBadRequest, "missing scene name in path")
		return
	}

	switch action {
	case "":
		s.handleSceneCRUD(w, r, name)
	case "pixel-to-world":
		s.handlePixelToWorld(w, r, name)
	case "world-to-pixel":
		s.handleWorldToPixel(w, r, name)
	default:
		s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown scene action %q", action))
	}
}

func (s *Server) handleSceneCRUD(w http.ResponseWriter, r *http.Request, name string) {
	switch r.Method {
	case http.MethodGet:
		cal, err := s.scenes.Get(name)
		if err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, cal)
	case http.MethodPut:
		var cal scene.Calibration
		if err := json.NewDecoder(r.Body).Decode(&cal); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode calibration: %v", err))
			return
		}
		cal.Scene = name
		if err := s.scenes.Upsert(&cal); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, cal)
	case http.MethodDelete:
		if err := s.scenes.Delete(name); err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// pixelTransformRequest is the body for both transform actions: the
// point plus the image geometry the front end currently observes.
type pixelTransformRequest struct {
	Pixel    *scene.PixelPoint     `json:"pixel,omitempty"`
	World    *scene.WorldPoint     `json:"world,omitempty"`
	Geometry scene.DisplayGeometry `json:"geometry"`
}

func (s *Server) handlePixelToWorld(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cal, err := s.scenes.Get(name)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	var req pixelTransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}
	if req.Pixel == nil {
		s.writeJSONError(w, http.StatusBadRequest, "missing pixel point")
		return
	}

	// A nil result means the image geometry is not known yet; the
	// caller retries on the next render. Encoded as pending, not as an
	// error.
	world := cal.PixelToWorld(*req.Pixel, req.Geometry)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pending": world == nil,
		"world":   world,
	})
}

func (s *Server) handleWorldToPixel(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cal, err := s.scenes.Get(name)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	var req pixelTransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}
	if req.World == nil {
		s.writeJSONError(w, http.StatusBadRequest, "missing world point")
		return
	}

	pixel := cal.WorldToPixel(*req.World, req.Geometry)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pending": pixel == nil,
		"pixel":   pixel,
	})
}
