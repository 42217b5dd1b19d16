package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcalc/internal/batch"
	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/store"
)

var (
	batchOutput  string
	batchWorkers int
	batchSave    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <cases.xlsx>",
	Short: "Analyze every case in a spreadsheet",
	Long: `Analyze beam cases listed one per row in the first sheet of an Excel
workbook. The first row is a header; the columns are, in order:

  ` + strings.Join(batch.Columns, ", ") + `

Rows that fail to parse or validate are reported and do not stop the run.

Examples:
  beamcalc batch cases.xlsx
  beamcalc batch cases.xlsx --output results.xlsx --workers 8 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write results to an Excel workbook")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "Number of cases analyzed in parallel")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Save successful analyses to the history database")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cases, err := batch.ReadCases(args[0], cfg.Material)
	if err != nil {
		return err
	}
	log.Printf("read %d cases from %s", len(cases), args[0])

	results, err := batch.Run(cmd.Context(), cases, batchWorkers, beam.WithResolution(cfg.Resolution))
	if err != nil {
		return err
	}

	failed := 0
	fmt.Println()
	fmt.Println("BATCH RESULTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Row\tName\tV max (N)\tM max (N·mm)\tσ (MPa)\tFS\tStatus\n")
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(w, "  %d\t%s\t\t\t\t\t✗ %v\n", res.Row, res.Name, res.Err)
			continue
		}
		r := res.Report.Result
		status := "✓"
		if r.Yields() {
			status = "⚠ yields"
		}
		fmt.Fprintf(w, "  %d\t%s\t%.2f\t%.2f\t%s\t%s\t%s\n",
			res.Row, res.Name, r.MaxShearForce, r.MaxBendingMoment, r.MaxNormalStress, r.SafetyFactor, status)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  %d analyzed, %d failed\n", len(results)-failed, failed)

	if batchOutput != "" {
		if err := batch.WriteResults(batchOutput, results); err != nil {
			return err
		}
		fmt.Printf("  Results written to: %s\n", batchOutput)
	}

	if batchSave {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		saved := 0
		for _, res := range results {
			if res.Err != nil {
				continue
			}
			if _, err := st.Save(cmd.Context(), res.Name, res.Report); err != nil {
				return err
			}
			saved++
		}
		fmt.Printf("  Saved %d analyses to %s\n", saved, cfg.DBPath)
	}
	fmt.Println()
	return nil
}
