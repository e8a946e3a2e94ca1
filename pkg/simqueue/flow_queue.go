/*
Package simqueue implements the two runtime containers the engine
mutates on every step: the FlowEntityQueue (entities awaiting or
undergoing service) and the ResourceEntityQueue (the resource pool and
its availability state).
*/
package simqueue

import "github.com/cuemby/sdesim/pkg/simmodel"

// PriorityOf resolves an activity id to its tie-breaking priority.
// The flow queue needs this to order same-arrival-time entities by
// their activity's priority (spec.md §9, open question 3); it takes a
// function rather than a *simmodel.Model so it has no import-cycle
// risk and is trivial to stub in tests.
type PriorityOf func(activityID string) int

// flowRecord wraps a FlowEntity. Its position in FlowEntityQueue.records
// doubles as its insertion order, so ties break by slice order rather
// than a separate sequence counter.
type flowRecord struct {
	entity *simmodel.FlowEntity
}

// FlowEntityQueue holds every flow entity the engine has ever seen,
// processed or not, for post-run traceability (spec.md §3's
// lifecycle note: entities remain in the queue after departure).
type FlowEntityQueue struct {
	records []*flowRecord
	byID    map[string]*flowRecord
}

// NewFlowEntityQueue returns an empty queue.
func NewFlowEntityQueue() *FlowEntityQueue {
	return &FlowEntityQueue{byID: make(map[string]*flowRecord)}
}

// Add appends an entity.
func (q *FlowEntityQueue) Add(e *simmodel.FlowEntity) {
	r := &flowRecord{entity: e}
	q.records = append(q.records, r)
	q.byID[e.ID] = r
}

// Get returns the entity with the given id, if present.
func (q *FlowEntityQueue) Get(id string) (*simmodel.FlowEntity, bool) {
	r, ok := q.byID[id]
	if !ok {
		return nil, false
	}
	return r.entity, true
}

// NextUnprocessed returns the unprocessed, not-yet-in-service entity
// with the smallest arrival time; ties are broken by the priority of
// its activity (higher first) when priorityOf is non-nil, then by
// insertion order. Returns (nil, false) once every entity has
// either completed or is already mid-service awaiting its
// end_service event.
func (q *FlowEntityQueue) NextUnprocessed(priorityOf PriorityOf) (*simmodel.FlowEntity, bool) {
	var best *flowRecord
	var bestPriority int
	for _, r := range q.records {
		if r.entity.Processed() || r.entity.InService {
			continue
		}
		if best == nil {
			best = r
			if priorityOf != nil {
				bestPriority = priorityOf(r.entity.ActivityID)
			}
			continue
		}
		if r.entity.ArrivalTime < best.entity.ArrivalTime {
			best = r
			if priorityOf != nil {
				bestPriority = priorityOf(r.entity.ActivityID)
			}
			continue
		}
		if r.entity.ArrivalTime > best.entity.ArrivalTime {
			continue
		}
		// Same arrival time: higher activity priority wins, then
		// insertion order (records are already seq-ascending, so the
		// first record encountered at a given priority already wins
		// FIFO ties without further comparison).
		if priorityOf != nil {
			p := priorityOf(r.entity.ActivityID)
			if p > bestPriority {
				best = r
				bestPriority = p
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return best.entity, true
}

// UpdateDeparture stamps an entity's departure time. Returns false if
// no entity with that id exists.
func (q *FlowEntityQueue) UpdateDeparture(id string, t simmodel.SimTime) bool {
	r, ok := q.byID[id]
	if !ok {
		return false
	}
	r.entity.DepartureTime = t
	return true
}

// Pending returns every entity that has not yet completed its current
// activity, in insertion order.
func (q *FlowEntityQueue) Pending() []*simmodel.FlowEntity {
	var out []*simmodel.FlowEntity
	for _, r := range q.records {
		if !r.entity.Processed() {
			out = append(out, r.entity)
		}
	}
	return out
}

// Len reports the total number of entities ever added.
func (q *FlowEntityQueue) Len() int { return len(q.records) }

// All returns every entity in insertion order.
func (q *FlowEntityQueue) All() []*simmodel.FlowEntity {
	out := make([]*simmodel.FlowEntity, len(q.records))
	for i, r := range q.records {
		out[i] = r.entity
	}
	return out
}
