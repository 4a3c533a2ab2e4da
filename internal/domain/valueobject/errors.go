package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced across the application boundary.
var (
	// ErrConcurrentModification is returned when an optimistic-lock write
	// finds the record already changed. Callers must re-read and retry.
	ErrConcurrentModification = errors.New("application modified concurrently")

	// ErrApplicationNotFound is returned when the requested application
	// does not exist for the tenant.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrProductNotFound is returned when the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrNoActiveCounterOffer is returned when responding to a counter offer
	// that is absent or already expired.
	ErrNoActiveCounterOffer = errors.New("no active counter offer")

	// ErrSnapshotAlreadyTaken guards the write-once applicant snapshot.
	ErrSnapshotAlreadyTaken = errors.New("applicant snapshot already taken")
)

// ValidationError reports malformed or out-of-range input. The caller can
// recover by correcting the input; it is never retried automatically.
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

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IllegalTransitionError reports a status change not permitted from the
// current state. It is surfaced verbatim, never silently coerced.
type IllegalTransitionError struct {
	From  ApplicationStatus
	To    ApplicationStatus
	Actor ActorType
}

func (e *IllegalTransitionError) Error() string {
	if e.Actor.IsZero() {
		return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
	}
	return fmt.Sprintf("illegal transition from %s to %s for actor %s", e.From, e.To, e.Actor)
}

// IncompleteApplicationError aggregates every unmet submission condition.
// Submission is all-or-nothing; no partial submission is permitted.
type IncompleteApplicationError struct {
	Missing []string
}

func (e *IncompleteApplicationError) Error() string {
	return "application incomplete: " + strings.Join(e.Missing, "; ")
}
