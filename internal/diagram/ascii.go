package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/beamcalc/internal/beam"
)

// ChartSize sets the terminal chart dimensions in characters
type ChartSize struct {
	Width  int
	Height int
}

// DefaultChartSize fits an 80 column terminal
var DefaultChartSize = ChartSize{Width: 60, Height: 12}

// DrawShearChart plots the shear force diagram as a terminal line chart
func DrawShearChart(d *beam.Diagram, size ChartSize) string {
	return drawChart(values(d, Shear), size, fmt.Sprintf("Shear force V (N) over %.0f mm", d.Span))
}

// DrawMomentChart plots the bending moment diagram as a terminal line chart
func DrawMomentChart(d *beam.Diagram, size ChartSize) string {
	return drawChart(values(d, Moment), size, fmt.Sprintf("Bending moment M (N·mm) over %.0f mm", d.Span))
}

func drawChart(data []float64, size ChartSize, caption string) string {
	if len(data) < 2 {
		return "  (no diagram: zero span)\n"
	}
	return asciigraph.Plot(data,
		asciigraph.Width(size.Width),
		asciigraph.Height(size.Height),
		asciigraph.Precision(1),
		asciigraph.Offset(3),
		asciigraph.Caption(caption),
	) + "\n"
}

// DrawBeamSketch draws the beam, its supports and the applied load
func DrawBeamSketch(c beam.Configuration, l beam.Load, width int) string {
	if width < 20 {
		width = 20
	}
	if c.Length <= 0 {
		return "  (no sketch: zero length)\n"
	}

	col := func(pos float64) int {
		i := int(pos/c.Length*float64(width-1) + 0.5)
		return min(max(i, 0), width-1)
	}
	blank := func() []rune {
		return []rune(strings.Repeat(" ", width))
	}
	put := func(row []rune, at int, s string) {
		for i, r := range []rune(s) {
			if at+i >= 0 && at+i < len(row) {
				row[at+i] = r
			}
		}
	}

	label := fmt.Sprintf("%.2f N", l.Magnitude)
	labelRow, barRow, arrowRow := blank(), blank(), blank()

	switch l.Kind {
	case beam.Point:
		at := col(l.Start)
		put(labelRow, at-len(label)/2, label)
		barRow[at] = '│'
		arrowRow[at] = '▼'
	case beam.Uniform:
		s, e := col(l.Start), col(l.End)
		put(labelRow, (s+e)/2-len(label)/2, label)
		for i := s; i <= e; i++ {
			barRow[i] = '─'
			if (i-s)%3 == 0 || i == e {
				arrowRow[i] = '▼'
			}
		}
	}

	beamRow := []rune(strings.Repeat("═", width))
	supportRow := blank()
	switch c.Kind {
	case beam.SimpleBeam:
		supportRow[col(c.LeftSupport)] = '△'
		supportRow[col(c.RightSupport)] = '○'
	case beam.Cantilever:
		beamRow[0] = '▓'
		barRow[0] = '▓'
		arrowRow[0] = '▓'
		supportRow[0] = '▓'
	}

	dimRow := blank()
	end := fmt.Sprintf("%.0f mm", c.Length)
	put(dimRow, 0, "0")
	put(dimRow, width-len(end), end)

	var sb strings.Builder
	sb.WriteString("\n")
	for _, row := range [][]rune{labelRow, barRow, arrowRow, beamRow, supportRow, dimRow} {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes and misaligns "·" and "²".
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
