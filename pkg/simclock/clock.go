/*
Package simclock holds the simulation's current virtual time. It
advances only by explicit jumps to an event's timestamp; it never
ticks on its own.
*/
package simclock

import (
	"fmt"

	"github.com/cuemby/sdesim/pkg/simmodel"
)

// MonotonicityViolation is raised when something attempts to move the
// clock backwards. It always indicates a bug in a scheduler
// extension, never a modelling outcome.
type MonotonicityViolation struct {
	Current simmodel.SimTime
	Target  simmodel.SimTime
}

func (e *MonotonicityViolation) Error() string {
	return fmt.Sprintf("clock monotonicity violation: cannot advance from %v to %v", e.Current, e.Target)
}

// Clock holds the current simulated time.
type Clock struct {
	now simmodel.SimTime
}

// New returns a Clock starting at t=0.
func New() *Clock {
	return &Clock{}
}

// Now returns the current simulated time.
func (c *Clock) Now() simmodel.SimTime {
	return c.now
}

// Advance moves the clock forward to t. t must be >= Now(); violating
// this is a fatal programming error.
func (c *Clock) Advance(t simmodel.SimTime) error {
	if t < c.now {
		return &MonotonicityViolation{Current: c.now, Target: t}
	}
	c.now = t
	return nil
}
