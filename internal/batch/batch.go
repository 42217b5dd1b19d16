package batch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/beamcalc/internal/analysis"
	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/section"
)

// Columns is the expected header of a case sheet, in order
var Columns = []string{
	"name", "beam", "length", "left_support", "right_support",
	"load", "magnitude", "start", "end", "width", "height", "material",
}

// Case is one row of a case sheet. Err is set when the row could not be parsed.
type Case struct {
	Row   int
	Input analysis.Input
	Err   error
}

// Result is the outcome of one case
type Result struct {
	Row    int
	Name   string
	Report *analysis.Report
	Err    error
}

// ReadCases reads beam cases from the first sheet of an xlsx workbook. The
// first row is a header; blank rows are skipped. Rows with an empty material
// cell use defaultMaterial.
func ReadCases(path, defaultMaterial string) ([]Case, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no cases", sheet)
	}

	var cases []Case
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		if in.Material == "" {
			in.Material = defaultMaterial
		}
		cases = append(cases, Case{Row: i + 1, Input: in, Err: err})
	}
	return cases, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (analysis.Input, error) {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	var firstErr error
	num := func(i int) float64 {
		s := get(i)
		if s == "" {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %s: %q is not a number", Columns[i], s)
		}
		return v
	}

	kind, err := beam.ParseKind(get(1))
	if err != nil {
		return analysis.Input{Name: get(0)}, err
	}
	loadKind, err := beam.ParseLoadKind(get(5))
	if err != nil {
		return analysis.Input{Name: get(0)}, err
	}

	in := analysis.Input{
		Name: get(0),
		Beam: beam.Configuration{
			Kind:         kind,
			Length:       num(2),
			LeftSupport:  num(3),
			RightSupport: num(4),
		},
		Load: beam.Load{
			Kind:      loadKind,
			Magnitude: num(6),
			Start:     num(7),
			End:       num(8),
		},
		Section:  section.Rectangle{Width: num(9), Height: num(10)},
		Material: get(11),
	}
	// Simple beams default to supports at both ends
	if kind == beam.SimpleBeam && get(3) == "" && get(4) == "" {
		in.Beam.RightSupport = in.Beam.Length
	}
	return in, firstErr
}

// Run analyzes the cases with at most workers concurrent evaluations. Rows
// that failed to parse or validate are reported in their Result; only a
// cancelled context stops the run early.
func Run(ctx context.Context, cases []Case, workers int, opts ...beam.Option) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := Result{Row: c.Row, Name: c.Input.Name, Err: c.Err}
			if res.Err == nil {
				res.Report, res.Err = analysis.Run(c.Input, opts...)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
