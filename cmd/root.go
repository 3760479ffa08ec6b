package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/feltlab/residue/internal/config"
	"github.com/feltlab/residue/internal/menu"
)

var (
	// Global flags
	debug       bool
	profilePath string

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "residue",
	Short: "Remove leftovers of uninstalled Windows applications",
	Long: `Residue - Remove leftovers of uninstalled Windows applications.

After an uninstaller has run, stray processes, install directories,
shortcuts, and registry keys often remain. Residue stops the processes
and sweeps the leftovers, with an optional registry cleanup.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// When invoked without subcommand, show the interactive menu.
		runInteractiveMenu(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write detailed operation logs to a file")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Cleanup profile TOML file (default: built-in Nimbus Sync profile)")

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadProfile returns the profile selected by --profile, or the built-in one.
func loadProfile() (*config.Profile, error) {
	if profilePath == "" {
		return config.DefaultProfile(), nil
	}
	return config.Load(profilePath)
}

// initLogging routes the suppressed-error log. Without --debug it is
// discarded entirely; with --debug it goes to a small rotating file under
// the user's local app data, never to the console.
func initLogging() {
	if !debug {
		log.SetOutput(io.Discard)
		return
	}
	dir := os.Getenv("LOCALAPPDATA")
	if dir == "" {
		dir = os.TempDir()
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(dir, "residue", "residue.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	})
}

// runInteractiveMenu launches the full-screen interactive main menu.
func runInteractiveMenu(cmd *cobra.Command) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		// Piped output: the menu cannot render. Point at the subcommands.
		_ = cmd.Help()
		return
	}

	profile, err := loadProfile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := menu.Run(profile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
