package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/beamcalc/internal/analysis"
	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/diagram"
)

// Row is one labelled line of a report table
type Row struct {
	Label string
	Value string
}

// InputRows lists the beam, load and section data of a report
func InputRows(rep *analysis.Report) []Row {
	in := rep.Input
	rows := []Row{
		{"Beam type", in.Beam.Kind.String()},
		{"Beam length", fmt.Sprintf("%.2f mm", in.Beam.Length)},
	}
	if in.Beam.Kind == beam.SimpleBeam {
		rows = append(rows,
			Row{"Left support", fmt.Sprintf("%.2f mm", in.Beam.LeftSupport)},
			Row{"Right support", fmt.Sprintf("%.2f mm", in.Beam.RightSupport)},
		)
	}
	rows = append(rows,
		Row{"Load type", in.Load.Kind.String()},
		Row{"Load magnitude", fmt.Sprintf("%.2f N", in.Load.Magnitude)},
		Row{"Load start", fmt.Sprintf("%.2f mm", in.Load.Start)},
	)
	if in.Load.Kind == beam.Uniform {
		rows = append(rows, Row{"Load end", fmt.Sprintf("%.2f mm", in.Load.End)})
	}
	rows = append(rows,
		Row{"Section width", fmt.Sprintf("%.2f mm", in.Section.Width)},
		Row{"Section height", fmt.Sprintf("%.2f mm", in.Section.Height)},
	)
	return rows
}

// MaterialRows lists the material properties of a report
func MaterialRows(rep *analysis.Report) []Row {
	m := rep.Material
	return []Row{
		{"Material", m.Name},
		{"Yield strength", fmt.Sprintf("%.2f MPa", m.YieldStrength)},
		{"Elastic modulus", fmt.Sprintf("%.2f GPa", m.ElasticModulus)},
		{"Density", fmt.Sprintf("%.2f kg/m3", m.Density)},
		{"Poisson's ratio", fmt.Sprintf("%.2f", m.PoissonsRatio)},
		{"Thermal expansion", fmt.Sprintf("%.2f um/m-K", m.ThermalExpansion)},
	}
}

// ResultRows lists reactions, peaks, stresses and the safety factor
func ResultRows(rep *analysis.Report) []Row {
	r := rep.Result
	rx := rep.Diagram.Reactions
	rows := []Row{
		{"Analyzed span", fmt.Sprintf("%.2f mm", rep.Diagram.Span)},
	}
	if rep.Input.Beam.Kind == beam.Cantilever {
		rows = append(rows,
			Row{"Fixed-end reaction", fmt.Sprintf("%.2f N", rx.Left)},
			Row{"Fixed-end moment", fmt.Sprintf("%.2f N-mm", rx.FixedMoment)},
		)
	} else {
		rows = append(rows,
			Row{"Left reaction", fmt.Sprintf("%.2f N", rx.Left)},
			Row{"Right reaction", fmt.Sprintf("%.2f N", rx.Right)},
		)
	}
	rows = append(rows,
		Row{"Max shear force", fmt.Sprintf("%.2f N", r.MaxShearForce)},
		Row{"Max bending moment", fmt.Sprintf("%.2f N-mm", r.MaxBendingMoment)},
		Row{"Area", fmt.Sprintf("%.2f mm2", r.Area)},
		Row{"Moment of inertia", fmt.Sprintf("%.2f mm4", r.MomentOfInertia)},
		Row{"Max normal stress", r.MaxNormalStress.String() + unit(r.MaxNormalStress.Defined, " MPa")},
		Row{"Max shear stress", r.MaxShearStress.String() + unit(r.MaxShearStress.Defined, " MPa")},
		Row{"Safety factor", r.SafetyFactor.String()},
	)
	return rows
}

// Status returns a one-line verdict on the safety factor
func Status(rep *analysis.Report) string {
	r := rep.Result
	switch {
	case r.ZeroSection:
		return "Section has zero area or inertia; stresses are undefined"
	case r.NoLoad:
		return "No bending stress; safety factor is undefined"
	case r.Yields():
		return fmt.Sprintf("WARNING: safety factor %.2f < 1, yielding predicted", r.SafetyFactor.Value)
	}
	return fmt.Sprintf("OK: safety factor %.2f against yield", r.SafetyFactor.Value)
}

func unit(defined bool, u string) string {
	if defined {
		return u
	}
	return ""
}

// WritePDF renders the report as an A4 PDF with the input data, results
// and both internal force diagrams.
func WritePDF(w io.Writer, rep *analysis.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Beam Load Calculation", false)
	pdf.AddPage()

	title := "Beam Load Calculation"
	if rep.Name != "" {
		title += ": " + rep.Name
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	table(pdf, "Input", InputRows(rep))
	table(pdf, "Material", MaterialRows(rep))
	table(pdf, "Results", ResultRows(rep))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, Status(rep))
	pdf.Ln(10)

	if len(rep.Diagram.Samples) > 1 {
		for _, s := range []diagram.Series{diagram.Shear, diagram.Moment} {
			png, err := diagram.RenderPNG(rep.Diagram, s)
			if err != nil {
				return fmt.Errorf("render %s diagram: %w", s, err)
			}
			name := "diagram-" + s.String()
			opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
			if pdf.GetY() > 180 {
				pdf.AddPage()
			}
			pdf.ImageOptions(name, 15, pdf.GetY(), 180, 0, true, opts, 0, "")
			pdf.Ln(4)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

func table(pdf *gofpdf.Fpdf, heading string, rows []Row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, heading)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for i, r := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(70, 6, r.Label, "", 0, "L", fill, 0, "")
		pdf.CellFormat(100, 6, r.Value, "", 1, "L", fill, 0, "")
	}
	pdf.Ln(4)
}
