package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes owned by the engine layer.
// Domain-level errors (validation, mastery, import) live in the skills package.
var (
	// ErrMalformedResponse means the provider's text could not be turned into
	// the expected JSON or section shape after all extraction strategies.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrProviderCall means the network call to the generation provider failed.
	// Always retryable by re-invoking the same pipeline stage; never retried
	// automatically.
	ErrProviderCall = errors.New("provider call failed")
)

// MalformedResponseError carries a hint about the likely extraction failure.
type MalformedResponseError struct {
	Hint string // e.g. fences still present vs. plain parse failure
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed provider response: %s: %v", e.Hint, e.Err)
	}
	return fmt.Sprintf("malformed provider response: %s", e.Hint)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedResponse) match.
func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// ProviderError identifies which pipeline stage (and, for per-skill calls,
// which skill) a failed provider call belonged to, so an orchestrating loop
// can report partial progress.
type ProviderError struct {
	Stage string // "identify_skills", "growth_plan", "suggest_job_titles"
	Skill string // skill name for per-skill calls, "" otherwise
	Err   error
}

func (e *ProviderError) Error() string {
	if e.Skill != "" {
		return fmt.Sprintf("%s for %q: %v", e.Stage, e.Skill, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProviderCall }
