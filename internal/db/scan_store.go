package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
)

// StoredScan is a persisted scan snapshot with its storage identity.
type StoredScan struct {
	ScanID      string              `json:"scan_id"`
	CreatedAtNs int64               `json:"created_at_ns"`
	Grid        gridmap.SampledGrid `json:"grid"`
}

// ScanStore persists SampledGrid snapshots. Each snapshot is written
// wholesale in one transaction so readers never see a partial scan.
type ScanStore struct {
	db *DB
}

// NewScanStore creates a ScanStore over an open database.
func NewScanStore(db *DB) *ScanStore {
	return &ScanStore{db: db}
}

// InsertScan persists a validated grid snapshot and returns the
// generated scan ID.
func (s *ScanStore) InsertScan(g *gridmap.SampledGrid) (string, error) {
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("validate scan: %w", err)
	}

	scanID := uuid.New().String()
	createdAtNs := time.Now().UnixNano()

	xAxisJSON, err := json.Marshal(g.XAxis)
	if err != nil {
		return "", fmt.Errorf("marshal x_axis: %w", err)
	}
	yAxisJSON, err := json.Marshal(g.YAxis)
	if err != nil {
		return "", fmt.Errorf("marshal y_axis: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin scan insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO scans (
			scan_id, scene, width, height, x_axis_json, y_axis_json,
			total_points, step_x, step_y, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		scanID, g.Scene, g.Width, g.Height, string(xAxisJSON), string(yAxisJSON),
		g.TotalPoints, g.StepX, g.StepY, createdAtNs,
	)
	if err != nil {
		return "", fmt.Errorf("insert scan: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scan_points (scan_id, row_idx, col_idx, x_m, y_m, iss_dbm)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("prepare point insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range g.Points {
		if _, err := stmt.Exec(scanID, p.Row, p.Col, p.X, p.Y, p.ISSDbm); err != nil {
			return "", fmt.Errorf("insert point (%d,%d): %w", p.Row, p.Col, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit scan insert: %w", err)
	}
	return scanID, nil
}

// GetScan retrieves a scan and all its points by ID.
func (s *ScanStore) GetScan(scanID string) (*StoredScan, error) {
	row := s.db.QueryRow(`
		SELECT scan_id, scene, width, height, x_axis_json, y_axis_json,
		       total_points, step_x, step_y, created_at_ns
		FROM scans
		WHERE scan_id = ?
	`, scanID)

	stored, err := s.scanFromRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scan not found: %s", scanID)
	}
	return stored, err
}

// LatestScan retrieves the most recent scan for a scene, or for any
// scene when scene is empty. Returns nil with no error when no scan has
// been recorded yet.
func (s *ScanStore) LatestScan(scene string) (*StoredScan, error) {
	var row *sql.Row
	if scene != "" {
		row = s.db.QueryRow(`
			SELECT scan_id, scene, width, height, x_axis_json, y_axis_json,
			       total_points, step_x, step_y, created_at_ns
			FROM scans
			WHERE scene = ?
			ORDER BY created_at_ns DESC
			LIMIT 1
		`, scene)
	} else {
		row = s.db.QueryRow(`
			SELECT scan_id, scene, width, height, x_axis_json, y_axis_json,
			       total_points, step_x, step_y, created_at_ns
			FROM scans
			ORDER BY created_at_ns DESC
			LIMIT 1
		`)
	}

	stored, err := s.scanFromRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return stored, err
}

// ScanSummary is the point-free metadata of a stored scan, for listing.
type ScanSummary struct {
	ScanID      string `json:"scan_id"`
	Scene       string `json:"scene"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	TotalPoints int    `json:"total_points"`
	CreatedAtNs int64  `json:"created_at_ns"`
}

// ListScans returns scan summaries newest-first, optionally filtered by
// scene.
func (s *ScanStore) ListScans(scene string, limit int) ([]ScanSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error
	if scene != "" {
		rows, err = s.db.Query(`
			SELECT scan_id, scene, width, height, total_points, created_at_ns
			FROM scans
			WHERE scene = ?
			ORDER BY created_at_ns DESC
			LIMIT ?
		`, scene, limit)
	} else {
		rows, err = s.db.Query(`
			SELECT scan_id, scene, width, height, total_points, created_at_ns
			FROM scans
			ORDER BY created_at_ns DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var out []ScanSummary
	for rows.Next() {
		var sum ScanSummary
		if err := rows.Scan(&sum.ScanID, &sum.Scene, &sum.Width, &sum.Height, &sum.TotalPoints, &sum.CreatedAtNs); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scans rows: %w", err)
	}
	return out, nil
}

// DeleteScan removes a scan and, via the foreign key cascade, its
// points.
func (s *ScanStore) DeleteScan(scanID string) error {
	result, err := s.db.Exec(`DELETE FROM scans WHERE scan_id = ?`, scanID)
	if err != nil {
		return fmt.Errorf("delete scan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("scan not found: %s", scanID)
	}
	return nil
}

func (s *ScanStore) scanFromRow(row *sql.Row) (*StoredScan, error) {
	var stored StoredScan
	var xAxisJSON, yAxisJSON string

	err := row.Scan(
		&stored.ScanID,
		&stored.Grid.Scene,
		&stored.Grid.Width,
		&stored.Grid.Height,
		&xAxisJSON,
		&yAxisJSON,
		&stored.Grid.TotalPoints,
		&stored.Grid.StepX,
		&stored.Grid.StepY,
		&stored.CreatedAtNs,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	if err := json.Unmarshal([]byte(xAxisJSON), &stored.Grid.XAxis); err != nil {
		return nil, fmt.Errorf("unmarshal x_axis: %w", err)
	}
	if err := json.Unmarshal([]byte(yAxisJSON), &stored.Grid.YAxis); err != nil {
		return nil, fmt.Errorf("unmarshal y_axis: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT row_idx, col_idx, x_m, y_m, iss_dbm
		FROM scan_points
		WHERE scan_id = ?
		ORDER BY row_idx, col_idx
	`, stored.ScanID)
	if err != nil {
		return nil, fmt.Errorf("load scan points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p gridmap.GridPoint
		if err := rows.Scan(&p.Row, &p.Col, &p.X, &p.Y, &p.ISSDbm); err != nil {
			return nil, fmt.Errorf("scan point row: %w", err)
		}
		stored.Grid.Points = append(stored.Grid.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan points rows: %w", err)
	}

	return &stored, nil
}
