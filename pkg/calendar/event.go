/*
Package calendar implements the simulation's event calendar: a
time-ordered set of future BEGIN_SERVICE / END_SERVICE transitions,
with the tie-break order spec.md §4.4 requires.
*/
package calendar

import "github.com/cuemby/sdesim/pkg/simmodel"

// EventKind is a closed tagged variant. Extensions (e.g. a future
// Cancel) add new constants rather than new ad-hoc strings (spec.md
// §9's "Event kinds as strings" design note).
type EventKind int

const (
	EndService EventKind = iota
	BeginService
)

func (k EventKind) String() string {
	switch k {
	case EndService:
		return "END_SERVICE"
	case BeginService:
		return "BEGIN_SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Event is one scheduled transition: a flow entity either beginning
// or ending service at a given activity.
type Event struct {
	Time       simmodel.SimTime
	Kind       EventKind
	EntityID   string
	ActivityID string

	// priority is the owning activity's priority, snapshotted at
	// schedule time so the calendar can order same-timestamp,
	// same-kind events without consulting the model.
	priority int
	// seq is the insertion sequence, for FIFO tie-breaking once time,
	// kind, and priority are all equal.
	seq uint64
}
