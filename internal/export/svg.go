// Package export renders saved time series as standalone SVG plots,
// for runs too long to read off a terminal graph.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/dynfba/internal/sim"
)

// SeriesToSVG draws one column against time as an SVG polyline.
// Returns "" when the column is unknown or has fewer than two points.
func SeriesToSVG(series *sim.TimeSeries, column string, width, height int, strokeColor string) string {
	times, ok := series.Column("time")
	if !ok || len(times) < 2 {
		return ""
	}
	values, ok := series.Column(column)
	if !ok {
		return ""
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="16" fill="#cccccc" font-family="monospace" font-size="12">%s</text>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, column, strokeColor))

	for i := range times {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteSVG writes one column's plot to a file.
func WriteSVG(path string, series *sim.TimeSeries, column string, width, height int) error {
	svg := SeriesToSVG(series, column, width, height, "#00ff88")
	if svg == "" {
		return fmt.Errorf("export: nothing to plot for column %q", column)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
