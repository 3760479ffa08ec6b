package regsweep

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// Outcome classifies what happened to one registry key target.
type Outcome int

const (
	OutcomeDeleted Outcome = iota
	OutcomeAbsent
	OutcomeFailed
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeAbsent:
		return "absent"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// KeyResult records the outcome for one registry key.
type KeyResult struct {
	Key     string
	Outcome Outcome
	Err     error
}

// AnyFailed reports whether any key in the batch failed. Unlike the filesystem
// sweep, registry failures are surfaced to the operator — as a single combined
// warning, not per key.
func AnyFailed(results []KeyResult) bool {
	for _, r := range results {
		if r.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}

// Sweeper deletes registry keys recursively, best effort.
type Sweeper struct {
	DryRun bool
}

// Run attempts to delete each key in order. An error on one key never stops
// the run; every remaining key is still attempted.
func (s *Sweeper) Run(keys []string) []KeyResult {
	results := make([]KeyResult, 0, len(keys))
	for _, spec := range keys {
		results = append(results, s.sweepOne(spec))
	}
	return results
}

func (s *Sweeper) sweepOne(spec string) KeyResult {
	root, path, err := ParseKey(spec)
	if err != nil {
		return KeyResult{Key: spec, Outcome: OutcomeFailed, Err: err}
	}

	// Probe first so an absent key is not reported as a failure.
	probe, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err == registry.ErrNotExist {
		return KeyResult{Key: spec, Outcome: OutcomeAbsent}
	}
	if err == nil {
		probe.Close()
	}

	if s.DryRun {
		return KeyResult{Key: spec, Outcome: OutcomeSkipped}
	}

	if err := deleteKeyRecursive(root, path); err != nil {
		log.Printf("regsweep: %s: %v", spec, err)
		return KeyResult{Key: spec, Outcome: OutcomeFailed, Err: err}
	}
	return KeyResult{Key: spec, Outcome: OutcomeDeleted}
}

// deleteKeyRecursive removes a key and all of its subkeys. registry.DeleteKey
// only deletes empty keys, so subkeys are walked depth-first.
func deleteKeyRecursive(root registry.Key, path string) error {
	key, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return err
	}

	subkeys, err := key.ReadSubKeyNames(-1)
	key.Close()
	if err != nil {
		return err
	}

	for _, sub := range subkeys {
		if err := deleteKeyRecursive(root, path+`\`+sub); err != nil {
			return err
		}
	}

	return registry.DeleteKey(root, path)
}

// ParseKey splits a ROOT\path spec like `HKCU\Software\Vendor` into the
// registry root handle and the subkey path. Both short and long hive names
// are accepted, case-insensitively.
func ParseKey(spec string) (registry.Key, string, error) {
	hive, path, found := strings.Cut(spec, `\`)
	if !found || path == "" {
		return 0, "", fmt.Errorf("registry key %q has no path", spec)
	}

	switch strings.ToUpper(hive) {
	case "HKCU", "HKEY_CURRENT_USER":
		return registry.CURRENT_USER, path, nil
	case "HKLM", "HKEY_LOCAL_MACHINE":
		return registry.LOCAL_MACHINE, path, nil
	case "HKU", "HKEY_USERS":
		return registry.USERS, path, nil
	case "HKCR", "HKEY_CLASSES_ROOT":
		return registry.CLASSES_ROOT, path, nil
	default:
		return 0, "", fmt.Errorf("unknown registry hive %q", hive)
	}
}
