package sweep

// Outcome classifies what happened to a single cleanup target. Failures during
// best-effort stages are recorded here instead of being returned as errors, so
// callers (and tests) can still see what was attempted versus what succeeded.
type Outcome int

const (
	// OutcomeRemoved means the target existed and was deleted.
	OutcomeRemoved Outcome = iota

	// OutcomeAbsent means the target did not exist; nothing was done.
	OutcomeAbsent

	// OutcomeIgnoredFailure means deletion was attempted and failed, and the
	// failure was suppressed per the best-effort policy.
	OutcomeIgnoredFailure

	// OutcomeSkipped means the target was never attempted (safety guard or
	// dry-run).
	OutcomeSkipped
)

// String returns the lowercase label used in progress output and logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeRemoved:
		return "removed"
	case OutcomeAbsent:
		return "absent"
	case OutcomeIgnoredFailure:
		return "ignored-failure"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result records the outcome for one path target.
type Result struct {
	Path    string
	Outcome Outcome

	// Err holds the suppressed error for OutcomeIgnoredFailure and the guard
	// reason for OutcomeSkipped. It is never surfaced to the operator as a
	// failure; it exists for the debug log and for tests.
	Err error
}
