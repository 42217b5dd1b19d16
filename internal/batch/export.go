package batch

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

var resultHeader = []any{
	"row", "name", "max_shear_n", "max_moment_nmm",
	"normal_stress_mpa", "shear_stress_mpa", "safety_factor", "status",
}

// WriteResults saves one line per case to an xlsx workbook. Undefined
// stresses and failed rows leave their numeric cells empty.
func WriteResults(path string, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &resultHeader); err != nil {
		return err
	}

	for i, res := range results {
		row := []any{res.Row, res.Name}
		if res.Err != nil {
			row = append(row, nil, nil, nil, nil, nil, "error: "+res.Err.Error())
		} else {
			r := res.Report.Result
			row = append(row, r.MaxShearForce, r.MaxBendingMoment,
				optional(r.MaxNormalStress.Value, r.MaxNormalStress.Defined),
				optional(r.MaxShearStress.Value, r.MaxShearStress.Defined),
				optional(r.SafetyFactor.Value, r.SafetyFactor.Defined),
				status(res))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func optional(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

func status(res Result) string {
	r := res.Report.Result
	switch {
	case r.ZeroSection:
		return "zero section"
	case r.NoLoad:
		return "no load"
	case r.Yields():
		return "yields"
	}
	return "ok"
}
