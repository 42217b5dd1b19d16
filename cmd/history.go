package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcalc/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved analyses",
	Long: `List analyses saved with 'analyze --save', 'batch --save' or the API.

Examples:
  beamcalc history --limit 10
  beamcalc history show 3`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum number of analyses to list (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No saved analyses.")
		return nil
	}

	fmt.Println()
	fmt.Println("SAVED ANALYSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tDate\tName\tBeam\tLoad\tSpan (mm)\tM max (N·mm)\tFS\n")
	for _, r := range recs {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Name, r.BeamKind, r.LoadKind,
			r.Span, r.MaxBendingMoment, r.SafetyFactor)
	}
	w.Flush()
	fmt.Println()
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rep, err := st.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	printReport(rep, false, false)
	return nil
}
