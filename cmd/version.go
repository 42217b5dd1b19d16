package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcalc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of beamcalc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("beamcalc v%s\n", version.Version)
		fmt.Println("Beam Load Calculator")
		fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
