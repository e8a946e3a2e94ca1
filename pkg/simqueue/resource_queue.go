package simqueue

import "github.com/cuemby/sdesim/pkg/simmodel"

type resourceRecord struct {
	entity *simmodel.ResourceEntity
}

// ResourceEntityQueue is the pool of resource entities and their
// availability state.
type ResourceEntityQueue struct {
	records []*resourceRecord
	byID    map[string]*resourceRecord
}

// NewResourceEntityQueue returns an empty queue.
func NewResourceEntityQueue() *ResourceEntityQueue {
	return &ResourceEntityQueue{byID: make(map[string]*resourceRecord)}
}

// Add registers a resource.
func (q *ResourceEntityQueue) Add(r *simmodel.ResourceEntity) {
	rec := &resourceRecord{entity: r}
	q.records = append(q.records, rec)
	q.byID[r.ID] = rec
}

// Get returns the resource with the given id, if present.
func (q *ResourceEntityQueue) Get(id string) (*simmodel.ResourceEntity, bool) {
	r, ok := q.byID[id]
	if !ok {
		return nil, false
	}
	return r.entity, true
}

// Acquire returns, without mutating it, the available resource of the
// given type with the smallest ready_time; ties break by insertion
// order. The caller (the engine) decides how to update the returned
// resource's state. Returns (nil, false) if no resource of that type
// is currently available.
func (q *ResourceEntityQueue) Acquire(t simmodel.ResourceType) (*simmodel.ResourceEntity, bool) {
	return q.AcquireExcluding(t, nil)
}

// AcquireExcluding is like Acquire but skips any resource whose id is
// present in exclude. This lets a caller satisfy a multiset
// requirement (e.g. an activity that needs two "loader" resources) by
// excluding ids already picked earlier in the same all-or-nothing
// acquisition attempt, so the same instance is never selected twice.
func (q *ResourceEntityQueue) AcquireExcluding(t simmodel.ResourceType, exclude map[string]bool) (*simmodel.ResourceEntity, bool) {
	var best *simmodel.ResourceEntity
	for _, rec := range q.records {
		r := rec.entity
		if r.Type != t || !r.Available || exclude[r.ID] {
			continue
		}
		if best == nil || r.ReadyTime < best.ReadyTime {
			best = r
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// All returns every resource in insertion order.
func (q *ResourceEntityQueue) All() []*simmodel.ResourceEntity {
	out := make([]*simmodel.ResourceEntity, len(q.records))
	for i, r := range q.records {
		out[i] = r.entity
	}
	return out
}

// Len reports the total number of resources ever added.
func (q *ResourceEntityQueue) Len() int { return len(q.records) }
