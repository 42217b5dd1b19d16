package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/beamcalc/internal/analysis"
)

const (
	summarySheet = "Summary"
	diagramSheet = "Diagram"
)

// WriteXLSX writes a workbook with a summary sheet and the sampled diagram
// with line charts of shear and moment.
func WriteXLSX(w io.Writer, rep *analysis.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	row := 1
	sections := []struct {
		heading string
		rows    []Row
	}{
		{"Input", InputRows(rep)},
		{"Material", MaterialRows(rep)},
		{"Results", ResultRows(rep)},
	}
	for _, sec := range sections {
		if err := f.SetCellValue(summarySheet, cell(1, row), sec.heading); err != nil {
			return err
		}
		row++
		for _, r := range sec.rows {
			if err := f.SetSheetRow(summarySheet, cell(1, row), &[]any{r.Label, r.Value}); err != nil {
				return err
			}
			row++
		}
		row++
	}
	if err := f.SetCellValue(summarySheet, cell(1, row), Status(rep)); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 24); err != nil {
		return err
	}

	if _, err := f.NewSheet(diagramSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(diagramSheet, "A1", &[]any{"x (mm)", "V (N)", "M (N-mm)"}); err != nil {
		return err
	}
	for i, s := range rep.Diagram.Samples {
		if err := f.SetSheetRow(diagramSheet, cell(1, i+2), &[]any{s.Position, s.ShearForce, s.BendingMoment}); err != nil {
			return err
		}
	}

	if n := len(rep.Diagram.Samples); n > 1 {
		last := n + 1
		for i, col := range []string{"B", "C"} {
			chart := &excelize.Chart{
				Type: excelize.Line,
				Series: []excelize.ChartSeries{{
					Name:       fmt.Sprintf("%s!$%s$1", diagramSheet, col),
					Categories: fmt.Sprintf("%s!$A$2:$A$%d", diagramSheet, last),
					Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", diagramSheet, col, col, last),
				}},
				Title: []excelize.RichTextRun{{Text: []string{"Shear Force Diagram", "Bending Moment Diagram"}[i]}},
			}
			if err := f.AddChart(diagramSheet, cell(5, 2+i*18), chart); err != nil {
				return fmt.Errorf("add chart: %w", err)
			}
		}
	}

	return f.Write(w)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
