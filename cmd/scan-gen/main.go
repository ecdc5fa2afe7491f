// Command scan-gen posts a synthetic interference scan to a running
// simworld server, or writes a PNG heat map of it for inspection.
// Useful for exercising the transform endpoints without a real scan
// service.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
	"github.com/kenny223sns/sim-world-sub001/internal/monitor"
)

var (
	serverURL = flag.String("server", "http://localhost:8080", "simworld server base URL")
	sceneName = flag.String("scene", "campus", "Scene name for the generated scan")
	width     = flag.Int("width", 32, "Grid columns")
	height    = flag.Int("height", 32, "Grid rows")
	step      = flag.Float64("step", 4.0, "Grid spacing in meters")
	coverage  = flag.Float64("coverage", 0.6, "Fraction of cells the sparse scan covers")
	seed      = flag.Int64("seed", 0, "Random seed (0 means nondeterministic)")
	plotPath  = flag.String("plot", "", "Write a PNG heat map here instead of posting")
)

// generateScan builds a sparse grid with two synthetic jammer lobes so
// the heat map has visible structure.
func generateScan(rng *rand.Rand) *gridmap.SampledGrid {
	g := &gridmap.SampledGrid{
		Width:  *width,
		Height: *height,
		XAxis:  make(gridmap.Axis, *width),
		YAxis:  make(gridmap.Axis, *height),
		StepX:  *step,
		StepY:  *step,
		Scene:  *sceneName,
	}
	for c := range g.XAxis {
		g.XAxis[c] = float64(c) * *step
	}
	for r := range g.YAxis {
		g.YAxis[r] = float64(r) * *step
	}

	// Jammer positions in world meters.
	j1x, j1y := g.XAxis[*width/4], g.YAxis[*height/3]
	j2x, j2y := g.XAxis[(*width)*3/4], g.YAxis[(*height)*2/3]

	for r := 0; r < *height; r++ {
		for c := 0; c < *width; c++ {
			if rng.Float64() > *coverage {
				continue
			}
			x, y := g.XAxis[c], g.YAxis[r]
			d1 := math.Hypot(x-j1x, y-j1y)
			d2 := math.Hypot(x-j2x, y-j2y)
			d := math.Min(d1, d2)

			// Log-distance falloff from the nearest jammer plus noise.
			iss := -40 - 20*math.Log10(1+d) + rng.NormFloat64()*2
			g.Points = append(g.Points, gridmap.GridPoint{
				Row: r, Col: c, X: x, Y: y, ISSDbm: iss,
			})
		}
	}
	g.TotalPoints = len(g.Points)
	return g
}

func main() {
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	grid := generateScan(rng)
	log.Printf("Generated scan: scene=%s %dx%d, %d points", grid.Scene, grid.Width, grid.Height, len(grid.Points))

	if *plotPath != "" {
		if err := monitor.SaveHeatmapPNG(grid, *plotPath); err != nil {
			log.Fatalf("Failed to write plot: %v", err)
		}
		log.Printf("Wrote %s", *plotPath)
		return
	}

	body, err := json.Marshal(grid)
	if err != nil {
		log.Fatalf("Failed to marshal scan: %v", err)
	}

	resp, err := http.Post(*serverURL+"/api/scans", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to post scan: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("Server rejected scan: %s", resp.Status)
	}

	var created struct {
		ScanID string `json:"scan_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}
	fmt.Println(created.ScanID)
}
