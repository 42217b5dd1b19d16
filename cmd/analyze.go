package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcalc/internal/analysis"
	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/diagram"
	"github.com/alexiusacademia/beamcalc/internal/loads"
	"github.com/alexiusacademia/beamcalc/internal/report"
	"github.com/alexiusacademia/beamcalc/internal/store"
)

var (
	analyzeCase caseFlags

	// Input file
	analyzeFile string

	// Output options
	analyzeResolution int
	analyzeTable      bool
	analyzeDiagram    bool
	analyzeJSON       bool
	analyzeExport     string
	analyzePDF        string
	analyzeXLSX       string
	analyzeSave       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute shear and moment diagrams, stresses and safety factor",
	Long: `Compute the shear force and bending moment diagrams of a beam under a
single point or uniform load, then check a rectangular section against
the yield strength of its material.

Positions are measured in mm from the left end of the beam. A simple
beam rests on supports at --left and --right; a cantilever is fixed at 0.
A uniform load's --magnitude is the total resultant in N, spread over
--start to --end.

Examples:
  # 1000 N at midspan of a 1000 mm simple beam, 100x200 section
  beamcalc analyze --length 1000 --magnitude 1000 --start 500 -b 100 --height 200

  # Uniform load on a cantilever with charts in the terminal
  beamcalc analyze --beam cantilever --length 2000 --load uniform \
    --magnitude 4000 --start 0 --end 2000 -b 50 --height 100 --diagram

  # Factored dead and live load, PDF report
  beamcalc analyze --length 3000 --dead 2000 --live 1500 --start 1500 \
    -b 150 --height 300 --pdf report.pdf

  # Case from a JSON file, saved to history
  beamcalc analyze --file case.json --save`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCase.register(analyzeCmd.Flags())

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the case from a JSON file instead of flags")

	analyzeCmd.Flags().IntVarP(&analyzeResolution, "resolution", "n", 0, "Number of sampling intervals (default from BEAMCALC_RESOLUTION or 100)")
	analyzeCmd.Flags().BoolVarP(&analyzeTable, "table", "t", false, "Print every sample")
	analyzeCmd.Flags().BoolVarP(&analyzeDiagram, "diagram", "d", false, "Show the beam sketch and terminal charts")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeExport, "export", "e", "", "Export diagram images (e.g. beam.png, beam.svg, beam.pdf)")
	analyzeCmd.Flags().StringVar(&analyzePDF, "pdf", "", "Write a PDF report")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Write an Excel workbook")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the analysis to the history database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var (
		in  analysis.Input
		err error
	)
	if analyzeFile != "" {
		var fromFile *analysis.Input
		fromFile, err = analysis.LoadFromFile(analyzeFile)
		if err != nil {
			return err
		}
		in = *fromFile
		if in.Material == "" {
			in.Material = cfg.Material
		}
	} else {
		in, err = analyzeCase.input(cmd.Flags())
		if err != nil {
			return err
		}
	}

	resolution := analyzeResolution
	if resolution <= 0 {
		resolution = cfg.Resolution
	}

	rep, err := analysis.Run(in, beam.WithResolution(resolution))
	if err != nil {
		return err
	}

	// Status lines go to stderr when stdout carries the JSON document
	out := cmd.OutOrStdout()
	status := out
	if analyzeJSON {
		status = cmd.ErrOrStderr()
	}

	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		if p, ok := analyzeCase.components(); ok && analyzeFile == "" {
			printCombinations(p)
		}
		printReport(rep, analyzeTable, analyzeDiagram)
	}

	if analyzeExport != "" {
		files, err := diagram.ExportDiagrams(rep.Diagram, analyzeExport)
		if err != nil {
			return fmt.Errorf("export diagrams: %w", err)
		}
		for _, f := range files {
			fmt.Fprintf(status, "  Diagram exported to: %s\n", f)
		}
	}
	if analyzePDF != "" {
		if err := writeFile(analyzePDF, func(w io.Writer) error { return report.WritePDF(w, rep) }); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		fmt.Fprintf(status, "  PDF report written to: %s\n", analyzePDF)
	}
	if analyzeXLSX != "" {
		if err := writeFile(analyzeXLSX, func(w io.Writer) error { return report.WriteXLSX(w, rep) }); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Fprintf(status, "  Workbook written to: %s\n", analyzeXLSX)
	}
	if analyzeSave {
		id, err := saveReport(cmd.Context(), rep)
		if err != nil {
			return err
		}
		fmt.Fprintf(status, "  Saved to history as #%d (%s)\n", id, cfg.DBPath)
	}
	return nil
}

func saveReport(ctx context.Context, rep *analysis.Report) (int64, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return 0, err
	}
	defer st.Close()
	return st.Save(ctx, rep.Name, rep)
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printCombinations(p loads.Components) {
	governing, combo := loads.Governing(p, loads.Gravity)

	fmt.Println()
	fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Dead Load (D):\t%.2f N\n", p.Dead)
	fmt.Fprintf(w, "  Live Load (L):\t%.2f N\n", p.Live)
	fmt.Fprintf(w, "  Service (D + L):\t%.2f N\n", loads.Service.Factored(p))
	fmt.Fprintf(w, "  #\tCombination\tLoad (N)\n")
	fmt.Fprintf(w, "  ─\t───────────\t────────\n")
	for _, c := range loads.Gravity {
		marker := ""
		if c.ID == combo.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", c.ID, c.Description, c.Factored(p), marker)
	}
	w.Flush()
	fmt.Printf("  Applied load: %.2f N\n", governing)
}

func printRows(rows []report.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(w, "  %s:\t%s\n", r.Label, r.Value)
	}
	w.Flush()
}

// printReport writes the human-readable analysis to stdout
func printReport(rep *analysis.Report, table, charts bool) {
	title := "BEAM LOAD CALCULATION"
	if rep.Name != "" {
		title += " - " + rep.Name
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printRows(report.InputRows(rep))
	fmt.Println()

	fmt.Println("MATERIAL:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printRows(report.MaterialRows(rep))
	fmt.Println()

	if charts {
		fmt.Println("BEAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Print(diagram.DrawBeamSketch(rep.Input.Beam, rep.Input.Load, 60))
		fmt.Println()
		fmt.Println("SHEAR FORCE DIAGRAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Print(diagram.DrawShearChart(rep.Diagram, diagram.DefaultChartSize))
		fmt.Println()
		fmt.Println("BENDING MOMENT DIAGRAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Print(diagram.DrawMomentChart(rep.Diagram, diagram.DefaultChartSize))
		fmt.Println()
	}

	if table {
		fmt.Println("SAMPLES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "  x (mm)\tV (N)\tM (N·mm)\t\n")
		for _, s := range rep.Diagram.Samples {
			fmt.Fprintf(w, "  %.2f\t%.2f\t%.2f\t\n", s.Position, s.ShearForce, s.BendingMoment)
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("RESULTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printRows(report.ResultRows(rep))
	fmt.Println()

	r := rep.Result
	fmt.Print(diagram.DrawSummaryBox("SECTION CHECK", []string{
		fmt.Sprintf("σ max = %s MPa", r.MaxNormalStress),
		fmt.Sprintf("τ max = %s MPa", r.MaxShearStress),
		fmt.Sprintf("FS    = %s", r.SafetyFactor),
		report.Status(rep),
	}))
	fmt.Println()
}
