package scene

import (
	"database/sql"
	"fmt"
	"time"
)

// Store persists scene calibrations so the front end can adjust them at
// runtime. Calibrations loaded from the bootstrap YAML file are seeded
// through SeedDefaults on startup.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Upsert inserts or replaces a scene's calibration.
func (s *Store) Upsert(cal *Calibration) error {
	if err := cal.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO scene_calibrations (
			scene, origin_x_m, origin_y_m, pixels_per_meter,
			flip_y, rotation_deg, updated_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scene) DO UPDATE SET
			origin_x_m = excluded.origin_x_m,
			origin_y_m = excluded.origin_y_m,
			pixels_per_meter = excluded.pixels_per_meter,
			flip_y = excluded.flip_y,
			rotation_deg = excluded.rotation_deg,
			updated_at_ns = excluded.updated_at_ns
	`

	_, err := s.db.Exec(query,
		cal.Scene,
		cal.OriginXM,
		cal.OriginYM,
		cal.PixelsPerMeter,
		cal.FlipY,
		cal.RotationDeg,
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert calibration: %w", err)
	}
	return nil
}

// Get retrieves a scene's calibration by name.
func (s *Store) Get(sceneName string) (*Calibration, error) {
	query := `
		SELECT scene, origin_x_m, origin_y_m, pixels_per_meter, flip_y, rotation_deg
		FROM scene_calibrations
		WHERE scene = ?
	`

	var cal Calibration
	err := s.db.QueryRow(query, sceneName).Scan(
		&cal.Scene,
		&cal.OriginXM,
		&cal.OriginYM,
		&cal.PixelsPerMeter,
		&cal.FlipY,
		&cal.RotationDeg,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("calibration not found: %s", sceneName)
	}
	if err != nil {
		return nil, fmt.Errorf("get calibration: %w", err)
	}
	return &cal, nil
}

// List retrieves all calibrations ordered by scene name.
func (s *Store) List() ([]*Calibration, error) {
	query := `
		SELECT scene, origin_x_m, origin_y_m, pixels_per_meter, flip_y, rotation_deg
		FROM scene_calibrations
		ORDER BY scene
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list calibrations: %w", err)
	}
	defer rows.Close()

	var cals []*Calibration
	for rows.Next() {
		var cal Calibration
		if err := rows.Scan(
			&cal.Scene,
			&cal.OriginXM,
			&cal.OriginYM,
			&cal.PixelsPerMeter,
			&cal.FlipY,
			&cal.RotationDeg,
		); err != nil {
			return nil, fmt.Errorf("scan calibration row: %w", err)
		}
		cals = append(cals, &cal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list calibrations rows: %w", err)
	}
	return cals, nil
}

// Delete removes a scene's calibration.
func (s *Store) Delete(sceneName string) error {
	result, err := s.db.Exec(`DELETE FROM scene_calibrations WHERE scene = ?`, sceneName)
	if err != nil {
		return fmt.Errorf("delete calibration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("calibration not found: %s", sceneName)
	}
	return nil
}

// SeedDefaults inserts calibrations that are not already present,
// leaving runtime edits intact. Used to load the bootstrap YAML file on
// startup.
func (s *Store) SeedDefaults(cals map[string]Calibration) error {
	for name, cal := range cals {
		if _, err := s.Get(name); err == nil {
			continue
		}
		c := cal
		if err := s.Upsert(&c); err != nil {
			return fmt.Errorf("seed calibration %q: %w", name, err)
		}
	}
	return nil
}
