package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feltlab/residue/internal/core"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and environment info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("residue %s (%s) built %s\n", appVersion, appCommit, appDate)
		fmt.Println(core.WindowsVersionString())
		if core.IsElevated() {
			fmt.Println("Running as administrator")
		} else {
			fmt.Println("Running without elevation")
		}
	},
}
