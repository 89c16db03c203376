package viz

import "github.com/guptarohit/asciigraph"

// Plot renders a time series as an ASCII line chart.
func Plot(series []float64, caption string, height int) string {
	if len(series) == 0 {
		return "(no data)"
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several series on one chart.
func PlotMany(series [][]float64, caption string, height int) string {
	if len(series) == 0 {
		return "(no data)"
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
