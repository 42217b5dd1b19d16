package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcalc/internal/material"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the built-in materials",
	Long: `List the materials that can be passed to --material.

Custom takes its properties from --yield, --modulus, --density,
--poisson and --thermal.`,
	Run: runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println("MATERIALS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tfy (MPa)\tE (GPa)\tρ (kg/m³)\tν\tα (µm/m·K)\n")
	for _, m := range material.Standard() {
		if m.IsCustom() {
			fmt.Fprintf(w, "  %s\t-\t-\t-\t-\t-\n", m.Name)
			continue
		}
		marker := ""
		if m.Name == cfg.Material {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  %s%s\t%.0f\t%.0f\t%.0f\t%.2f\t%.1f\n",
			m.Name, marker, m.YieldStrength, m.ElasticModulus, m.Density, m.PoissonsRatio, m.ThermalExpansion)
	}
	w.Flush()
	fmt.Println()
}
