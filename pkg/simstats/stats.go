/*
Package simstats accumulates the raw per-activity and per-resource
samples the engine produces as a side effect of running. It does not
compute idleness, utilization curves, or export formats — those are
collaborators' jobs (spec.md §1's scope boundary); this package only
stores what the engine hands it, in the order the engine hands it.
*/
package simstats

import "github.com/cuemby/sdesim/pkg/simmodel"

// Interval is a closed busy period [Start, End] for one resource.
type Interval struct {
	Start simmodel.SimTime
	End   simmodel.SimTime
}

// ActivityStats accumulates samples for one activity.
type ActivityStats struct {
	WaitingTimes     []simmodel.SimTime
	ServiceTimes     []simmodel.SimTime
	CompletionCount  int
}

// ResourceStats accumulates busy intervals for one resource.
type ResourceStats struct {
	BusyIntervals []Interval
}

// Collector is the StatisticsCollector: per-activity waiting/service
// samples and per-resource busy intervals, appended in event order.
type Collector struct {
	activities map[string]*ActivityStats
	resources  map[string]*ResourceStats
}

// New returns a Collector with an empty row for every activity id and
// resource id given (the engine seeds these at Initialize so that
// every activity/resource appears in the output even if it never
// fires).
func New(activityIDs []string, resourceIDs []string) *Collector {
	c := &Collector{
		activities: make(map[string]*ActivityStats, len(activityIDs)),
		resources:  make(map[string]*ResourceStats, len(resourceIDs)),
	}
	for _, id := range activityIDs {
		c.activities[id] = &ActivityStats{}
	}
	for _, id := range resourceIDs {
		c.resources[id] = &ResourceStats{}
	}
	return c
}

// RecordService appends one begin-service observation for an
// activity: a waiting time and a service time. It does not touch the
// completion count (see RecordCompletion). activityID is seeded lazily if Initialize wasn't
// given it up front (e.g. a successor-spawned activity row).
func (c *Collector) RecordService(activityID string, waiting, service simmodel.SimTime) {
	a := c.activityRow(activityID)
	a.WaitingTimes = append(a.WaitingTimes, waiting)
	a.ServiceTimes = append(a.ServiceTimes, service)
}

// RecordCompletion increments an activity's completion count.
func (c *Collector) RecordCompletion(activityID string) {
	c.activityRow(activityID).CompletionCount++
}

// RecordBusy appends a busy interval for a resource.
func (c *Collector) RecordBusy(resourceID string, start, end simmodel.SimTime) {
	r := c.resourceRow(resourceID)
	r.BusyIntervals = append(r.BusyIntervals, Interval{Start: start, End: end})
}

func (c *Collector) activityRow(id string) *ActivityStats {
	a, ok := c.activities[id]
	if !ok {
		a = &ActivityStats{}
		c.activities[id] = a
	}
	return a
}

func (c *Collector) resourceRow(id string) *ResourceStats {
	r, ok := c.resources[id]
	if !ok {
		r = &ResourceStats{}
		c.resources[id] = r
	}
	return r
}

// Activity returns the accumulated stats for an activity id, or nil
// if the id was neither seeded by New nor ever recorded.
func (c *Collector) Activity(id string) *ActivityStats { return c.activities[id] }

// Resource returns the accumulated stats for a resource id, or nil if
// the id was neither seeded by New nor ever recorded.
func (c *Collector) Resource(id string) *ResourceStats { return c.resources[id] }

// Activities returns every activity id with recorded stats.
func (c *Collector) Activities() map[string]*ActivityStats { return c.activities }

// Resources returns every resource id with recorded stats.
func (c *Collector) Resources() map[string]*ResourceStats { return c.resources }

// Utilization returns a resource's busy time as a fraction of
// totalTime (the complement, idleness, is derived on demand per
// spec.md §4.6 rather than stored). Returns 0 if totalTime <= 0 or the
// resource has no recorded intervals.
func (c *Collector) Utilization(resourceID string, totalTime simmodel.SimTime) simmodel.SimTime {
	r, ok := c.resources[resourceID]
	if !ok || totalTime <= 0 {
		return 0
	}
	var busy simmodel.SimTime
	for _, iv := range r.BusyIntervals {
		busy += iv.End - iv.Start
	}
	return busy / totalTime
}
