package sweep

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Sweeper deletes an ordered list of filesystem paths, best effort. A failure
// on one path never stops the sweep; every remaining path is still attempted.
type Sweeper struct {
	// NeverDelete lists paths that are refused outright. A target is refused
	// when it equals one of these paths or contains one of them.
	NeverDelete []string

	// DryRun reports what would be removed without touching the filesystem.
	DryRun bool

	// Progress, if set, is called once per path with its result, in order.
	Progress func(Result)
}

// Run sweeps the given paths in order and returns one Result per path.
func (s *Sweeper) Run(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		res := s.sweepOne(path)
		if s.Progress != nil {
			s.Progress(res)
		}
		results = append(results, res)
	}
	return results
}

func (s *Sweeper) sweepOne(path string) Result {
	path = filepath.Clean(path)

	if reason := s.guard(path); reason != nil {
		log.Printf("sweep: refusing %s: %v", path, reason)
		return Result{Path: path, Outcome: OutcomeSkipped, Err: reason}
	}

	// Lstat, not Stat — a dangling shortcut or symlink is still residue.
	if _, err := os.Lstat(path); err != nil {
		return Result{Path: path, Outcome: OutcomeAbsent}
	}

	if s.DryRun {
		return Result{Path: path, Outcome: OutcomeSkipped, Err: errDryRun}
	}

	if err := os.RemoveAll(path); err != nil {
		// Locked file, permission denied — suppressed, recorded, move on.
		log.Printf("sweep: %s: %v", path, err)
		return Result{Path: path, Outcome: OutcomeIgnoredFailure, Err: err}
	}

	return Result{Path: path, Outcome: OutcomeRemoved}
}

var errDryRun = fmt.Errorf("dry-run")

// guard returns a reason the path must not be swept, or nil.
func (s *Sweeper) guard(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path is not absolute")
	}
	for _, never := range s.NeverDelete {
		never = filepath.Clean(never)
		if never == "" || never == "." {
			continue
		}
		if strings.EqualFold(path, never) {
			return fmt.Errorf("protected path")
		}
		// Deleting an ancestor of a protected path deletes the protected
		// path with it.
		if isAncestorOf(path, never) {
			return fmt.Errorf("contains protected path %s", never)
		}
	}
	return nil
}

// isAncestorOf reports whether child lives under parent. Comparison is
// case-insensitive, as Windows paths are.
func isAncestorOf(parent, child string) bool {
	rel, err := filepath.Rel(strings.ToLower(parent), strings.ToLower(child))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
