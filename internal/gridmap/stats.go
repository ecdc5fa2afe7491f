package gridmap

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats summarises the sampled signal strengths of a scan for the
// dashboard metric panels.
type Stats struct {
	Count   int     `json:"count"`
	MinDbm  float64 `json:"min_dbm"`
	MaxDbm  float64 `json:"max_dbm"`
	MeanDbm float64 `json:"mean_dbm"`
	StdDbm  float64 `json:"std_dbm"`
}

// SampleStats computes min/max/mean/stddev over the grid's sampled
// points. A grid with no points returns a zero Stats.
func (g *SampledGrid) SampleStats() Stats {
	if len(g.Points) == 0 {
		return Stats{}
	}

	values := make([]float64, len(g.Points))
	min, max := math.Inf(1), math.Inf(-1)
	for i, p := range g.Points {
		values[i] = p.ISSDbm
		if p.ISSDbm < min {
			min = p.ISSDbm
		}
		if p.ISSDbm > max {
			max = p.ISSDbm
		}
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return Stats{
		Count:   len(values),
		MinDbm:  min,
		MaxDbm:  max,
		MeanDbm: mean,
		StdDbm:  std,
	}
}
