package diagram

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/beamcalc/internal/beam"
)

// Series selects one of the two internal force diagrams
type Series int

const (
	Shear Series = iota
	Moment
)

func (s Series) String() string {
	if s == Moment {
		return "moment"
	}
	return "shear"
}

var (
	shearColor  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	shearFill   = color.RGBA{R: 100, G: 149, B: 237, A: 110}
	momentColor = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	momentFill  = color.RGBA{R: 237, G: 110, B: 100, A: 110}
)

const (
	imageWidth  = 8 * vg.Inch
	imageHeight = 4 * vg.Inch
)

func values(d *beam.Diagram, s Series) []float64 {
	out := make([]float64, len(d.Samples))
	for i, smp := range d.Samples {
		if s == Moment {
			out[i] = smp.BendingMoment
		} else {
			out[i] = smp.ShearForce
		}
	}
	return out
}

// newPlot builds the line plot of one diagram with its zero axis and a
// marker on the largest magnitude.
func newPlot(d *beam.Diagram, s Series) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Position x (mm)"
	lineColor, fillColor := shearColor, shearFill
	if s == Moment {
		p.Title.Text = "Bending Moment Diagram"
		p.Y.Label.Text = "M (N·mm)"
		lineColor, fillColor = momentColor, momentFill
	} else {
		p.Title.Text = "Shear Force Diagram"
		p.Y.Label.Text = "V (N)"
	}
	p.Add(plotter.NewGrid())

	vals := values(d, s)
	pts := make(plotter.XYs, len(d.Samples))
	peak := 0
	for i, smp := range d.Samples {
		pts[i] = plotter.XY{X: smp.Position, Y: vals[i]}
		if math.Abs(vals[i]) > math.Abs(vals[peak]) {
			peak = i
		}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = lineColor
	line.FillColor = fillColor
	p.Add(line)

	// Zero reference
	zero, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: d.Span, Y: 0},
	})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Gray{Y: 96}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(zero)

	marker, err := plotter.NewScatter(plotter.XYs{pts[peak]})
	if err != nil {
		return nil, err
	}
	marker.GlyphStyle.Color = lineColor
	marker.GlyphStyle.Radius = vg.Points(4)
	marker.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(marker)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{pts[peak]},
		Labels: []string{fmt.Sprintf("%.2f", vals[peak])},
	})
	if err != nil {
		return nil, err
	}
	p.Add(lbl)

	return p, nil
}

// ExportDiagrams writes the shear and moment diagrams next to filename as
// <name>-shear<ext> and <name>-moment<ext>. The extension selects the
// format (png, svg, pdf); anything else falls back to png.
func ExportDiagrams(d *beam.Diagram, filename string) ([]string, error) {
	if len(d.Samples) < 2 {
		return nil, fmt.Errorf("cannot plot a diagram with %d samples", len(d.Samples))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	switch ext {
	case ".png", ".svg", ".pdf":
	default:
		ext = ".png"
		base = filename
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	var written []string
	for _, s := range []Series{Shear, Moment} {
		p, err := newPlot(d, s)
		if err != nil {
			return written, err
		}
		out := fmt.Sprintf("%s-%s%s", base, s, ext)
		if err := p.Save(imageWidth, imageHeight, out); err != nil {
			return written, fmt.Errorf("save %s diagram: %w", s, err)
		}
		written = append(written, out)
	}
	return written, nil
}

// RenderPNG renders one diagram to PNG bytes
func RenderPNG(d *beam.Diagram, s Series) ([]byte, error) {
	if len(d.Samples) < 2 {
		return nil, fmt.Errorf("cannot plot a diagram with %d samples", len(d.Samples))
	}
	p, err := newPlot(d, s)
	if err != nil {
		return nil, err
	}
	wt, err := p.WriterTo(imageWidth, imageHeight, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
