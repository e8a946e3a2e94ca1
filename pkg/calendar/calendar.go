package calendar

import "container/heap"

// Calendar is a time-ordered set of future events. Ties are broken in
// this order: (1) END_SERVICE before BEGIN_SERVICE at the same
// timestamp, so resources free before being demanded again; (2)
// higher activity priority first; (3) insertion order.
type Calendar struct {
	h      eventHeap
	nextSeq uint64
}

// New returns an empty calendar.
func New() *Calendar {
	c := &Calendar{}
	heap.Init(&c.h)
	return c
}

// Schedule adds an event. priority is the owning activity's priority
// (higher goes first among same-timestamp, same-kind events); pass 0
// for activities without a meaningful priority.
func (c *Calendar) Schedule(e Event, priority int) {
	e.priority = priority
	e.seq = c.nextSeq
	c.nextSeq++
	heap.Push(&c.h, e)
}

// Peek returns the next-due event without removing it.
func (c *Calendar) Peek() (Event, bool) {
	if len(c.h) == 0 {
		return Event{}, false
	}
	return c.h[0], true
}

// Pop removes and returns the next-due event.
func (c *Calendar) Pop() (Event, bool) {
	if len(c.h) == 0 {
		return Event{}, false
	}
	e := heap.Pop(&c.h).(Event)
	return e, true
}

// Remove deletes the first event matching entityID/activityID/kind,
// if present. Used to cancel a scheduled transition; returns false if
// no match was found.
func (c *Calendar) Remove(entityID, activityID string, kind EventKind) bool {
	for i, e := range c.h {
		if e.EntityID == entityID && e.ActivityID == activityID && e.Kind == kind {
			heap.Remove(&c.h, i)
			return true
		}
	}
	return false
}

// Len reports how many events remain scheduled.
func (c *Calendar) Len() int { return len(c.h) }

// eventHeap implements container/heap.Interface. Less encodes the
// full tie-break order from spec.md §4.4/§5.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.Kind != b.Kind {
		// EndService (0) sorts before BeginService (1) at the same time.
		return a.Kind < b.Kind
	}
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return a.seq < b.seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
