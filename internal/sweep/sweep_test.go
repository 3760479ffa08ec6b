package sweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRemovesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "NimbusSync")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "cache", "data.db"), []byte("x"), 0o644))

	s := &Sweeper{}
	results := s.Run([]string{target})

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeRemoved, results[0].Outcome)
	_, err := os.Lstat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestRunAbsentPathIsNoOp(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist")

	s := &Sweeper{}
	results := s.Run([]string{missing})

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeAbsent, results[0].Outcome)
	assert.NoError(t, results[0].Err)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "leftover")
	require.NoError(t, os.MkdirAll(target, 0o755))

	s := &Sweeper{}

	first := s.Run([]string{target})
	require.Equal(t, OutcomeRemoved, first[0].Outcome)

	second := s.Run([]string{target})
	assert.Equal(t, OutcomeAbsent, second[0].Outcome)
}

func TestRunContinuesPastEveryPath(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "missing")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.MkdirAll(a, 0o755))
	require.NoError(t, os.MkdirAll(c, 0o755))

	var seen []string
	s := &Sweeper{
		Progress: func(r Result) { seen = append(seen, r.Path) },
	}
	results := s.Run([]string{a, b, c})

	require.Len(t, results, 3)
	assert.Equal(t, OutcomeRemoved, results[0].Outcome)
	assert.Equal(t, OutcomeAbsent, results[1].Outcome)
	assert.Equal(t, OutcomeRemoved, results[2].Outcome)
	assert.Equal(t, []string{a, b, c}, seen, "progress callback fires per path, in order")
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "keepme")
	require.NoError(t, os.MkdirAll(target, 0o755))

	s := &Sweeper{DryRun: true}
	results := s.Run([]string{target})

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSkipped, results[0].Outcome)
	_, err := os.Lstat(target)
	assert.NoError(t, err, "dry-run must not delete")
}

func TestGuardRefusesProtectedPaths(t *testing.T) {
	dir := t.TempDir()
	protected := filepath.Join(dir, "Windows")
	require.NoError(t, os.MkdirAll(protected, 0o755))

	s := &Sweeper{NeverDelete: []string{protected}}

	// The protected path itself.
	results := s.Run([]string{protected})
	require.Equal(t, OutcomeSkipped, results[0].Outcome)

	// An ancestor that contains it.
	results = s.Run([]string{dir})
	require.Equal(t, OutcomeSkipped, results[0].Outcome)

	// A child inside it is fair game.
	child := filepath.Join(protected, "Temp")
	require.NoError(t, os.MkdirAll(child, 0o755))
	results = s.Run([]string{child})
	assert.Equal(t, OutcomeRemoved, results[0].Outcome)

	_, err := os.Lstat(protected)
	assert.NoError(t, err, "protected path must survive")
}

func TestGuardRefusesRelativePath(t *testing.T) {
	s := &Sweeper{}
	results := s.Run([]string{"leftovers"})

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSkipped, results[0].Outcome)
	assert.Error(t, results[0].Err)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "removed", OutcomeRemoved.String())
	assert.Equal(t, "absent", OutcomeAbsent.String())
	assert.Equal(t, "ignored-failure", OutcomeIgnoredFailure.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
}
