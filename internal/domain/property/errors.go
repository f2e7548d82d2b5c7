package property

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("property not found")
	ErrValidation             = errors.New("validation failed")
	ErrIllegalTransition      = errors.New("illegal stage transition")
	ErrPreconditionFailed     = errors.New("precondition failed")
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrStaleVersion signals a lost optimistic-concurrency race on save.
	// The coordinator retries on it; it never crosses the API boundary.
	ErrStaleVersion = errors.New("stale property version")
)

// ValidationError carries the offending field so the HTTP layer can return
// a field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StageViolationError names both the stage the event needed and the stage
// the property was actually in. Nothing is mutated when it is returned.
type StageViolationError struct {
	Event    string
	Required []Stage
	Actual   Stage
}

func (e *StageViolationError) Error() string {
	return fmt.Sprintf("%s not legal in stage %q (requires %v)", e.Event, e.Actual, e.Required)
}

func (e *StageViolationError) Unwrap() error { return ErrIllegalTransition }

// PreconditionError blocks a stage-legal operation on a secondary business
// condition, e.g. a non-clean title at contract time.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func (e *PreconditionError) Unwrap() error { return ErrPreconditionFailed }
