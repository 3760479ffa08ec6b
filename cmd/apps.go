package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feltlab/residue/internal/apps"
	"github.com/feltlab/residue/internal/ui"
)

var (
	appsShowAll bool
	appsSearch  string
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List leftover uninstall registry entries",
	Long: `Scan the Add/Remove Programs registry locations for entries matching
the cleanup profile. Entries that survive an uninstall usually point at
an uninstaller binary that no longer exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := loadProfile()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		pattern := appsSearch
		if pattern == "" {
			pattern = profile.ProcessPattern
		}

		entries, err := apps.List(pattern, appsShowAll)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if len(entries) == 0 {
			ui.Successf(os.Stdout, "No leftover uninstall entries match %q.", pattern)
			return
		}

		ui.Printf(os.Stdout, "%d uninstall entries match %q:", len(entries), pattern)
		for _, e := range entries {
			line := "  " + e.Name
			if e.Version != "" {
				line += "  " + e.Version
			}
			if e.Publisher != "" {
				line += "  (" + e.Publisher + ")"
			}
			ui.Printf(os.Stdout, "%s", line)
			if e.UninstallString != "" {
				ui.Mutedf(os.Stdout, "    uninstall: %s", e.UninstallString)
			}
		}
	},
}

func init() {
	appsCmd.Flags().BoolVar(&appsShowAll, "show-all", false, "Include system components")
	appsCmd.Flags().StringVar(&appsSearch, "search", "", "Match entries by name instead of the profile pattern")
}
