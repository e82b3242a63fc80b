package engine

import (
	"fmt"
	"time"
)

// InvalidRangeError reports a candidate range whose end is not strictly
// after its start. It is an error, never a "not available" result.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %s must be strictly after start %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// ValidationError reports a bad input value and names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports an illegal status change. Both states are
// carried for diagnostics.
type InvalidTransitionError struct {
	Entity    string
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition from %q to %q", e.Entity, e.Current, e.Requested)
}

// NotFoundError reports a referenced record that does not exist or has been
// deleted. The persistence layer surfaces it; callers see it unchanged.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
