package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcalc/internal/config"
	"github.com/alexiusacademia/beamcalc/internal/version"
)

// cfg is loaded from the environment and .env before any command runs
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "beamcalc",
	Short: "Beam shear, moment and stress calculator",
	Long: `beamcalc - Beam Load Calculator

A CLI tool for quick structural checks of single-span beams.

Given a simply supported or cantilever beam carrying one point load or
one uniform distributed load, it computes:
  - Shear force and bending moment diagrams
  - Support reactions and peak internal forces
  - Bending and shear stresses in a rectangular section
  - Safety factor against material yield

All inputs use consistent units: mm, N and MPa.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   beamcalc v%-46s║\n", version.Version)
		fmt.Println("  ║   Beam Load Calculator                                    ║")
		fmt.Printf("  ║   %-56s║\n", fmt.Sprintf("%s ©  %s", version.Author, version.Year))
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for shear, moment and stress checks of")
		fmt.Println("  simply supported and cantilever beams.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Shear and moment diagrams for point and uniform loads")
		fmt.Println("    • Rectangular section stresses and safety factor")
		fmt.Println("    • PDF, Excel and image reports")
		fmt.Println("    • Batch runs from a spreadsheet of cases")
		fmt.Println("    • JSON API server with saved history")
		fmt.Println()
		fmt.Println("  Use 'beamcalc --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		cfg = config.Load()
	})
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
}
