package runner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feltlab/residue/internal/config"
	"github.com/feltlab/residue/internal/gate"
	"github.com/feltlab/residue/internal/procs"
	"github.com/feltlab/residue/internal/regsweep"
	"github.com/feltlab/residue/internal/services"
	"github.com/feltlab/residue/internal/sweep"
)

// ─── Stage stubs ─────────────────────────────────────────────────────────────

type stubKiller struct {
	calls   int
	pattern string
	results []procs.KillResult
}

func (s *stubKiller) KillMatching(pattern string) []procs.KillResult {
	s.calls++
	s.pattern = pattern
	return s.results
}

type stubPathSweeper struct {
	calls int
	paths []string
}

func (s *stubPathSweeper) Run(paths []string) []sweep.Result {
	s.calls++
	s.paths = paths
	results := make([]sweep.Result, 0, len(paths))
	for _, p := range paths {
		results = append(results, sweep.Result{Path: p, Outcome: sweep.OutcomeRemoved})
	}
	return results
}

type stubRegSweeper struct {
	calls   int
	results []regsweep.KeyResult
}

func (s *stubRegSweeper) Run(keys []string) []regsweep.KeyResult {
	s.calls++
	if s.results != nil {
		return s.results
	}
	results := make([]regsweep.KeyResult, 0, len(keys))
	for _, k := range keys {
		results = append(results, regsweep.KeyResult{Key: k, Outcome: regsweep.OutcomeDeleted})
	}
	return results
}

func testProfile(paths ...string) *config.Profile {
	return &config.Profile{
		Name:           "Nimbus Sync",
		ProcessPattern: "NimbusSync",
		Paths:          paths,
		RegistryKeys:   []string{`HKCU\Software\Nimbusware`},
	}
}

func newRunner(p *config.Profile, input string, out *strings.Builder) (*Runner, *stubKiller, *stubRegSweeper) {
	killer := &stubKiller{}
	reg := &stubRegSweeper{}
	r := &Runner{
		Profile:      p,
		Gate:         gate.New(strings.NewReader(input), out),
		Out:          out,
		Killer:       killer,
		Registry:     reg,
		StopServices: func(string, bool) []services.StopResult { return nil },
		Elevated:     func() bool { return true },
	}
	return r, killer, reg
}

// ─── End-to-end scenarios ────────────────────────────────────────────────────

func TestRunFullPipelineRegistryDeclined(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "NimbusSync")
	require.NoError(t, os.MkdirAll(target, 0o755))

	var out strings.Builder
	r, killer, reg := newRunner(testProfile(target), "y\nn\n", &out)

	report := r.Run()

	assert.False(t, report.Aborted)
	assert.Equal(t, 1, killer.calls, "process stop must be attempted")
	assert.Equal(t, "NimbusSync", killer.pattern)

	require.Len(t, report.Paths, 1)
	assert.Equal(t, sweep.OutcomeRemoved, report.Paths[0].Outcome)
	_, err := os.Lstat(target)
	assert.True(t, os.IsNotExist(err), "target directory must be removed")

	assert.True(t, report.RegistryDeclined)
	assert.Zero(t, reg.calls, "declined registry gate must touch no keys")
	assert.Empty(t, report.Registry)

	assert.Contains(t, out.String(), "Done. 1 of 1 paths removed.")
}

func TestRunAbortsAtFirstGate(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "NimbusSync")
	require.NoError(t, os.MkdirAll(target, 0o755))

	var out strings.Builder
	r, killer, reg := newRunner(testProfile(target), "n\n", &out)
	paths := &stubPathSweeper{}
	r.Paths = paths

	report := r.Run()

	assert.True(t, report.Aborted)
	assert.Zero(t, killer.calls)
	assert.Zero(t, paths.calls)
	assert.Zero(t, reg.calls)

	_, err := os.Lstat(target)
	assert.NoError(t, err, "abort must leave the filesystem untouched")
	assert.Contains(t, out.String(), "Aborted. Nothing was changed.")
}

func TestRunAnyNonAffirmativeInputAborts(t *testing.T) {
	for _, input := range []string{"no\n", "Y E S\n", "quit\n", "\n", ""} {
		var out strings.Builder
		r, killer, _ := newRunner(testProfile(), input, &out)
		paths := &stubPathSweeper{}
		r.Paths = paths

		report := r.Run()

		assert.True(t, report.Aborted, "input %q must abort", input)
		assert.Zero(t, killer.calls)
		assert.Zero(t, paths.calls)
	}
}

func TestRunRegistryAccepted(t *testing.T) {
	var out strings.Builder
	r, _, reg := newRunner(testProfile(), "y\ny\n", &out)
	r.Paths = &stubPathSweeper{}

	report := r.Run()

	assert.False(t, report.RegistryDeclined)
	assert.Equal(t, 1, reg.calls)
	require.Len(t, report.Registry, 1)
	assert.Equal(t, regsweep.OutcomeDeleted, report.Registry[0].Outcome)
	assert.False(t, report.RegistryWarning())
}

func TestRunRegistryFailureReportsOneWarning(t *testing.T) {
	var out strings.Builder
	r, _, reg := newRunner(testProfile(), "y\ny\n", &out)
	r.Paths = &stubPathSweeper{}
	reg.results = []regsweep.KeyResult{
		{Key: `HKCU\Software\Nimbusware`, Outcome: regsweep.OutcomeFailed, Err: errors.New("access denied")},
		{Key: `HKLM\SOFTWARE\Nimbusware`, Outcome: regsweep.OutcomeDeleted},
	}

	report := r.Run()

	assert.True(t, report.RegistryWarning())
	warning := "Remove them manually with regedit."
	assert.Equal(t, 1, strings.Count(out.String(), warning), "exactly one combined warning")
}

func TestRunSkipRegistryFlag(t *testing.T) {
	var out strings.Builder
	// Only the first gate is answered; the registry gate must never prompt.
	r, _, reg := newRunner(testProfile(), "y\n", &out)
	r.Paths = &stubPathSweeper{}
	r.SkipRegistry = true

	report := r.Run()

	assert.True(t, report.RegistryDeclined)
	assert.Zero(t, reg.calls)
	assert.NotContains(t, out.String(), "registry keys [y/N]")
}

func TestRunIgnoredPathFailureStillSucceeds(t *testing.T) {
	// A path failure is suppressed: the run completes and reports success.
	var out2 strings.Builder
	r2, _, _ := newRunner(testProfile(`C:\residue-test\locked`), "y\nn\n", &out2)
	r2.Paths = pathSweeperFunc(func(paths []string) []sweep.Result {
		return []sweep.Result{{Path: paths[0], Outcome: sweep.OutcomeIgnoredFailure, Err: errors.New("file locked")}}
	})

	report2 := r2.Run()

	assert.False(t, report2.Aborted)
	require.Len(t, report2.Paths, 1)
	assert.Equal(t, sweep.OutcomeIgnoredFailure, report2.Paths[0].Outcome)
	assert.Contains(t, out2.String(), "Done. 0 of 1 paths removed.")
	assert.NotContains(t, out2.String(), "file locked", "suppressed errors never reach the operator")
}

type pathSweeperFunc func(paths []string) []sweep.Result

func (f pathSweeperFunc) Run(paths []string) []sweep.Result { return f(paths) }

func TestReportRemoved(t *testing.T) {
	report := &Report{Paths: []sweep.Result{
		{Outcome: sweep.OutcomeRemoved},
		{Outcome: sweep.OutcomeAbsent},
		{Outcome: sweep.OutcomeRemoved},
		{Outcome: sweep.OutcomeIgnoredFailure},
	}}
	assert.Equal(t, 2, report.Removed())
}
