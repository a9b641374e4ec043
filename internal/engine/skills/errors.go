package skills

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationRejectedAll means per-item validation discarded every
	// candidate from a non-empty response — systemic schema drift, surfaced
	// distinctly from a legitimately empty result.
	ErrValidationRejectedAll = errors.New("all generated items failed validation")

	// ErrMasteryNotMet means a skill was marked mastered without satisfying
	// the mastery predicate. A user-facing validation error, not a fault.
	ErrMasteryNotMet = errors.New("mastery criteria not met")

	// ErrImportRejected means the import document was structurally invalid.
	// The entire import is a no-op on failure.
	ErrImportRejected = errors.New("import rejected")
)

// MasteryError carries the human-readable summary of why a skill cannot be
// mastered yet; callers must surface it, not swallow it.
type MasteryError struct {
	SkillID string
	Summary string
}

func (e *MasteryError) Error() string {
	return fmt.Sprintf("skill %q: %s", e.SkillID, e.Summary)
}

func (e *MasteryError) Is(target error) bool { return target == ErrMasteryNotMet }

// ImportError wraps the structural reason an import document was refused.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string { return "import rejected: " + e.Reason }

func (e *ImportError) Unwrap() error { return e.Err }

func (e *ImportError) Is(target error) bool { return target == ErrImportRejected }
