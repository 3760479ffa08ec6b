package runner

import (
	"io"
	"log"

	"github.com/feltlab/residue/internal/config"
	"github.com/feltlab/residue/internal/core"
	"github.com/feltlab/residue/internal/gate"
	"github.com/feltlab/residue/internal/procs"
	"github.com/feltlab/residue/internal/regsweep"
	"github.com/feltlab/residue/internal/services"
	"github.com/feltlab/residue/internal/sweep"
	"github.com/feltlab/residue/internal/ui"
)

// ProcessKiller force-stops processes matching a name pattern.
type ProcessKiller interface {
	KillMatching(pattern string) []procs.KillResult
}

// PathSweeper deletes filesystem paths, best effort.
type PathSweeper interface {
	Run(paths []string) []sweep.Result
}

// RegistrySweeper deletes registry keys, best effort.
type RegistrySweeper interface {
	Run(keys []string) []regsweep.KeyResult
}

// Runner drives the cleanup pipeline: confirmation gate, service stop,
// process termination, path sweep, then the optional registry sweep behind a
// second gate. Stages run strictly in order, single-threaded; only the first
// gate can abort the run.
type Runner struct {
	Profile *config.Profile
	Gate    *gate.Gate
	Out     io.Writer

	DryRun       bool
	SkipRegistry bool

	// Stage implementations, overridable by tests. Nil fields get the real
	// Windows-backed defaults on Run.
	Killer       ProcessKiller
	Paths        PathSweeper
	Registry     RegistrySweeper
	StopServices func(pattern string, dryRun bool) []services.StopResult
	Elevated     func() bool
}

// Report is the structured record of one pipeline run. Suppressed failures
// stay visible here even though the operator never sees them as errors.
type Report struct {
	Aborted bool

	Services  []services.StopResult
	Processes []procs.KillResult
	Paths     []sweep.Result

	RegistryDeclined bool
	Registry         []regsweep.KeyResult
}

// Removed returns how many path targets were actually deleted.
func (r *Report) Removed() int {
	n := 0
	for _, res := range r.Paths {
		if res.Outcome == sweep.OutcomeRemoved {
			n++
		}
	}
	return n
}

// RegistryWarning reports whether the registry stage needs its combined
// manual-follow-up warning.
func (r *Report) RegistryWarning() bool {
	return regsweep.AnyFailed(r.Registry)
}

// Run executes the pipeline and returns its report. A decline at the first
// gate returns immediately with Aborted set and zero mutations performed.
func (r *Runner) Run() *Report {
	r.fillDefaults()
	report := &Report{}
	p := r.Profile

	ui.Printf(r.Out, "%s residue cleanup", p.Name)
	if r.DryRun {
		ui.Mutedf(r.Out, "dry-run: nothing will be deleted")
	}

	if !r.Gate.Confirm("Have you already uninstalled " + p.Name + "? Continue removing leftovers") {
		ui.Mutedf(r.Out, "Aborted. Nothing was changed.")
		report.Aborted = true
		return report
	}

	r.stopServices(report)
	r.killProcesses(report)
	r.sweepPaths(report)
	r.sweepRegistry(report)

	ui.Successf(r.Out, "Done. %d of %d paths removed.", report.Removed(), len(report.Paths))
	return report
}

func (r *Runner) fillDefaults() {
	if r.Out == nil {
		r.Out = io.Discard
	}
	if r.Killer == nil {
		r.Killer = &procs.Terminator{DryRun: r.DryRun}
	}
	if r.Paths == nil {
		r.Paths = &sweep.Sweeper{
			NeverDelete: config.NeverDeletePaths(),
			DryRun:      r.DryRun,
			Progress:    r.printPathProgress,
		}
	}
	if r.Registry == nil {
		r.Registry = &regsweep.Sweeper{DryRun: r.DryRun}
	}
	if r.StopServices == nil {
		r.StopServices = services.StopMatching
	}
	if r.Elevated == nil {
		r.Elevated = core.IsElevated
	}
}

// stopServices asks the SCM to stop matching services before any process is
// killed, so nothing restarts what the terminator is about to remove.
// Best effort, silently suppressed.
func (r *Runner) stopServices(report *Report) {
	if r.Profile.ServicePattern == "" {
		return
	}
	report.Services = r.StopServices(r.Profile.ServicePattern, r.DryRun)
	for _, res := range report.Services {
		if res.Stopped {
			ui.Mutedf(r.Out, "  stopped service %s", res.Name)
		}
	}
}

// killProcesses force-stops anything still running from the target app.
// Failures are silently suppressed; this stage never aborts the run.
func (r *Runner) killProcesses(report *Report) {
	report.Processes = r.Killer.KillMatching(r.Profile.ProcessPattern)
	if len(report.Processes) == 0 {
		ui.Mutedf(r.Out, "No matching processes running.")
		return
	}
	for _, res := range report.Processes {
		if res.Killed {
			ui.Printf(r.Out, "  stopped %s (pid %d)", res.Name, res.PID)
		} else if r.DryRun {
			ui.Mutedf(r.Out, "  would stop %s (pid %d)", res.Name, res.PID)
		}
		// A failed kill is not reported; the process may simply have exited.
	}
}

func (r *Runner) sweepPaths(report *Report) {
	report.Paths = r.Paths.Run(r.Profile.ExpandedPaths())
}

// printPathProgress is the per-path progress line for the default sweeper.
// Suppressed failures read as plain announcements, never as errors.
func (r *Runner) printPathProgress(res sweep.Result) {
	switch res.Outcome {
	case sweep.OutcomeRemoved:
		ui.Printf(r.Out, "  removed %s", res.Path)
	case sweep.OutcomeAbsent:
		ui.Mutedf(r.Out, "  not found %s", res.Path)
	case sweep.OutcomeIgnoredFailure:
		ui.Printf(r.Out, "  attempted %s", res.Path)
	case sweep.OutcomeSkipped:
		if r.DryRun {
			ui.Mutedf(r.Out, "  would remove %s", res.Path)
		} else {
			ui.Mutedf(r.Out, "  skipped %s", res.Path)
		}
	}
}

// sweepRegistry runs the optional registry stage behind its own gate. This is
// the one stage whose failures are surfaced — as a single combined warning.
func (r *Runner) sweepRegistry(report *Report) {
	if r.SkipRegistry || len(r.Profile.RegistryKeys) == 0 {
		report.RegistryDeclined = true
		return
	}

	if r.Profile.WantsMachineKeys() && !r.Elevated() {
		ui.Warnf(r.Out, "Not running as administrator; HKLM keys will likely fail.")
	}

	if !r.Gate.Confirm("Also remove " + r.Profile.Name + " registry keys") {
		ui.Mutedf(r.Out, "Registry keys left in place.")
		report.RegistryDeclined = true
		return
	}

	report.Registry = r.Registry.Run(r.Profile.RegistryKeys)
	for _, res := range report.Registry {
		switch res.Outcome {
		case regsweep.OutcomeDeleted:
			ui.Printf(r.Out, "  deleted %s", res.Key)
		case regsweep.OutcomeAbsent:
			ui.Mutedf(r.Out, "  not found %s", res.Key)
		case regsweep.OutcomeFailed:
			log.Printf("runner: registry %s: %v", res.Key, res.Err)
		case regsweep.OutcomeSkipped:
			ui.Mutedf(r.Out, "  would delete %s", res.Key)
		}
	}

	if report.RegistryWarning() {
		ui.Warnf(r.Out, "Some registry keys could not be removed. Remove them manually with regedit.")
	}
}
