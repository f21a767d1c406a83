// Package export renders stored chains to SVG for reports.
package export

import (
	"fmt"
	"math"
	"os"
	"strings"
)

var palette = []string{"#00ccff", "#ff6688", "#88ff00", "#ffcc00", "#cc88ff", "#00ffcc"}

// TraceSVG renders one polyline per column over the sample index.
func TraceSVG(names []string, cols [][]float64, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	lo, hi := math.Inf(1), math.Inf(-1)
	numSamples := 0
	for _, col := range cols {
		for _, v := range col {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if len(col) > numSamples {
			numSamples = len(col)
		}
	}
	if numSamples < 2 || hi <= lo {
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	margin := 10.0
	scaleX := (float64(width) - 2*margin) / float64(numSamples-1)
	scaleY := (float64(height) - 2*margin) / (hi - lo)

	for ci, col := range cols {
		color := palette[ci%len(palette)]
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" points="`, color))
		for i, v := range col {
			x := margin + float64(i)*scaleX
			y := float64(height) - margin - (v-lo)*scaleY
			sb.WriteString(fmt.Sprintf("%.1f,%.1f ", x, y))
		}
		sb.WriteString("\"/>\n")

		if ci < len(names) {
			sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>`,
				width-80, 20+16*ci, color, names[ci]))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTraceSVG writes the rendered SVG to path.
func WriteTraceSVG(path string, names []string, cols [][]float64, width, height int) error {
	return os.WriteFile(path, []byte(TraceSVG(names, cols, width, height)), 0644)
}
