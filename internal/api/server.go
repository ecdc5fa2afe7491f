// Package api exposes the coordinate service over HTTP: scan ingest,
// transform queries against the current grid, marker tracking, and
// scene calibration management.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kenny223sns/sim-world-sub001/internal/db"
	"github.com/kenny223sns/sim-world-sub001/internal/overlay"
	"github.com/kenny223sns/sim-world-sub001/internal/scene"
	"github.com/kenny223sns/sim-world-sub001/internal/version"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server wires the stores and the in-memory grid state behind the HTTP
// interface.
type Server struct {
	scans   *db.ScanStore
	scenes  *scene.Store
	holder  *overlay.GridHolder
	markers *overlay.MarkerSet
	debug   map[string]http.HandlerFunc

	httpServer *http.Server
}

// Config holds the server's collaborators. DebugRoutes are extra
// handlers (heat map and similar) mounted verbatim.
type Config struct {
	Addr        string
	Scans       *db.ScanStore
	Scenes      *scene.Store
	Holder      *overlay.GridHolder
	Markers     *overlay.MarkerSet
	DebugRoutes map[string]http.HandlerFunc
}

// NewServer creates a Server with the given configuration.
func NewServer(cfg Config) *Server {
	s := &Server{
		scans:   cfg.Scans,
		scenes:  cfg.Scenes,
		holder:  cfg.Holder,
		markers: cfg.Markers,
		debug:   cfg.DebugRoutes,
	}
	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: LoggingMiddleware(s.ServeMux()),
	}
	return s
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/api/scans", s.handleScans)
	mux.HandleFunc("/api/scans/latest", s.handleLatestScan)
	mux.HandleFunc("/api/scans/", s.handleScanByID)

	mux.HandleFunc("/api/transform/inspect", s.handleInspect)
	mux.HandleFunc("/api/transform/canvas", s.handleCanvas)
	mux.HandleFunc("/api/transform/engine", s.handleEngine)
	mux.HandleFunc("/api/transform/metadata", s.handleMetadata)

	mux.HandleFunc("/api/markers", s.handleMarkers)
	mux.HandleFunc("/api/markers/", s.handleMarkerByID)
	mux.HandleFunc("/api/placements", s.handlePlacements)

	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scenes/", s.handleSceneByName)

	for pattern, handler := range s.debug {
		mux.HandleFunc(pattern, handler)
	}

	return mux
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		log.Printf("Starting HTTP server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := s.httpServer.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"git_sha": version.GitSHA,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
