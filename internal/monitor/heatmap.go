// Package monitor provides debugging visualisations of the current scan
// grid: an HTML heat map served over HTTP and a PNG export for offline
// inspection.
package monitor

import (
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kenny223sns/sim-world-sub001/internal/gridmap"
	"github.com/kenny223sns/sim-world-sub001/internal/overlay"
)

// HeatmapHandler renders the current grid's sampled signal strengths
// as an echarts heat map. Debugging-only endpoint: it lets an operator
// eyeball the interference map without the front end.
func HeatmapHandler(holder *overlay.GridHolder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid := holder.Current()
		if grid == nil {
			http.Error(w, "no scan loaded yet", http.StatusConflict)
			return
		}

		hm := buildHeatmap(grid)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := hm.Render(w); err != nil {
			http.Error(w, fmt.Sprintf("render heatmap: %v", err), http.StatusInternalServerError)
		}
	}
}

func buildHeatmap(grid *gridmap.SampledGrid) *charts.HeatMap {
	stats := grid.SampleStats()

	xLabels := make([]string, grid.Width)
	for c, v := range grid.XAxis {
		xLabels[c] = fmt.Sprintf("%.1f", v)
	}
	yLabels := make([]string, grid.Height)
	for r, v := range grid.YAxis {
		yLabels[r] = fmt.Sprintf("%.1f", v)
	}

	data := make([]opts.HeatMapData, 0, len(grid.Points))
	for _, p := range grid.Points {
		data = append(data, opts.HeatMapData{Value: [3]interface{}{p.Col, p.Row, p.ISSDbm}})
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Interference Scan",
			Theme:     "dark",
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Interference Heat Map",
			Subtitle: fmt.Sprintf("scene=%s grid=%dx%d points=%d", grid.Scene, grid.Width, grid.Height, len(grid.Points)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels, Name: "X (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels, Name: "Y (m)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(stats.MinDbm),
			Max:        float32(stats.MaxDbm),
			InRange:    &opts.VisualMapInRange{Color: []string{"#50a3ba", "#eac736", "#d94e5d"}},
		}),
	)
	hm.AddSeries("iss_dbm", data)
	return hm
}
