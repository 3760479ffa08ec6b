package procs

import (
	"log"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// KillResult records one termination attempt. Failures are suppressed — the
// field exists so callers can see what was attempted.
type KillResult struct {
	PID    int32
	Name   string
	Killed bool
	Err    error
}

// Matches reports whether a process name matches the pattern. Matching is a
// case-insensitive substring test, following Windows filename convention.
func Matches(name, pattern string) bool {
	if pattern == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

// Terminator force-stops running processes whose name matches a pattern.
type Terminator struct {
	// DryRun reports matches without killing anything.
	DryRun bool
}

// KillMatching enumerates all running processes and force-kills each one whose
// name contains pattern. Every failure (process already gone, access denied)
// is suppressed: this stage is best-effort cleanup, not a precondition, and it
// never returns an error for an individual process. The returned slice holds
// one entry per matching process.
func (t *Terminator) KillMatching(pattern string) []KillResult {
	if pattern == "" {
		return nil
	}

	procs, err := process.Processes()
	if err != nil {
		// Enumeration itself failed; nothing to attempt.
		log.Printf("procs: enumerate: %v", err)
		return nil
	}

	var results []KillResult
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Access denied or the process exited mid-enumeration.
			continue
		}
		if !Matches(name, pattern) {
			continue
		}

		res := KillResult{PID: p.Pid, Name: name}
		if t.DryRun {
			results = append(results, res)
			continue
		}

		if err := p.Kill(); err != nil {
			log.Printf("procs: kill %s (pid %d): %v", name, p.Pid, err)
			res.Err = err
		} else {
			res.Killed = true
		}
		results = append(results, res)
	}

	return results
}
