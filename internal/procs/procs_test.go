package procs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		proc    string
		pattern string
		want    bool
	}{
		{name: "exact", proc: "NimbusSync.exe", pattern: "NimbusSync", want: true},
		{name: "case insensitive", proc: "nimbussync.exe", pattern: "NimbusSync", want: true},
		{name: "substring", proc: "NimbusSyncHelper.exe", pattern: "NimbusSync", want: true},
		{name: "unrelated process", proc: "explorer.exe", pattern: "NimbusSync", want: false},
		{name: "near miss", proc: "NimbusNotes.exe", pattern: "NimbusSync", want: false},
		{name: "empty pattern never matches", proc: "NimbusSync.exe", pattern: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.proc, tt.pattern))
		})
	}
}

func TestKillMatchingEmptyPattern(t *testing.T) {
	term := &Terminator{}
	assert.Nil(t, term.KillMatching(""), "empty pattern must signal nothing")
}

func TestKillMatchingDryRunSignalsNothing(t *testing.T) {
	// With an unmatchable pattern the enumeration runs but no process is
	// touched; with dry-run even a real match would only be recorded.
	term := &Terminator{DryRun: true}
	results := term.KillMatching("residue-test-no-such-process-name")
	for _, r := range results {
		assert.False(t, r.Killed)
	}
	assert.Empty(t, results)
}
