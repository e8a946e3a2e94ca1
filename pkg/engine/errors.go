package engine

import "fmt"

// NegativeDurationError is fatal for the run it occurs in: a sampler
// returned a negative duration. Carries enough context to diagnose
// which activity/entity/time produced it (spec.md §7).
type NegativeDurationError struct {
	ActivityID string
	EntityID   string
	SimTime    float64
	Got        float64
}

func (e *NegativeDurationError) Error() string {
	return fmt.Sprintf(
		"negative duration %v sampled for activity %q (entity %q) at simulated time %v",
		e.Got, e.ActivityID, e.EntityID, e.SimTime,
	)
}

// UnknownActivityError describes an event or entity that references
// an activity id the model doesn't define; per spec.md §4.5.3 this is
// a no-op, not a fatal error. The engine's handlers log such a
// reference as a warning and do not construct or return this type.
type UnknownActivityError struct {
	ActivityID string
	EntityID   string
}

func (e *UnknownActivityError) Error() string {
	return fmt.Sprintf("unknown activity %q referenced by entity %q", e.ActivityID, e.EntityID)
}
