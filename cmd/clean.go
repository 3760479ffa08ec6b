package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feltlab/residue/internal/gate"
	"github.com/feltlab/residue/internal/runner"
)

var (
	cleanYes          bool
	cleanDryRun       bool
	cleanSkipRegistry bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Stop processes and sweep leftover files",
	Long: `Run the cleanup pipeline: confirm, stop leftover services and
processes, sweep install directories and shortcuts, then optionally
remove registry keys behind a second confirmation.`,
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := loadProfile()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		g := gate.New(os.Stdin, os.Stdout)
		g.AssumeYes = cleanYes

		r := &runner.Runner{
			Profile:      profile,
			Gate:         g,
			Out:          os.Stdout,
			DryRun:       cleanDryRun,
			SkipRegistry: cleanSkipRegistry,
		}

		report := r.Run()
		if report.Aborted {
			os.Exit(1)
		}
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanYes, "yes", false, "Skip confirmation prompts (registry sweep included)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Preview the cleanup without deleting")
	cleanCmd.Flags().BoolVar(&cleanSkipRegistry, "skip-registry", false, "Never touch the registry")
}
