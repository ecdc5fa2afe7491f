package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CalibrationFile is the on-disk YAML layout for bootstrap scene
// calibrations, keyed by scene name.
type CalibrationFile struct {
	Scenes map[string]Calibration `yaml:"scenes"`
}

// LoadCalibrations reads and validates scene calibrations from a YAML
// file. Each entry's Scene field is filled from its map key.
func LoadCalibrations(path string) (map[string]Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}

	var file CalibrationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse calibration file: %w", err)
	}

	out := make(map[string]Calibration, len(file.Scenes))
	for name, cal := range file.Scenes {
		cal.Scene = name
		if err := cal.Validate(); err != nil {
			return nil, fmt.Errorf("calibration %q: %w", name, err)
		}
		out[name] = cal
	}
	return out, nil
}
