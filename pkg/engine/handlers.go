package engine

import (
	"slices"

	"github.com/cuemby/sdesim/pkg/calendar"
	"github.com/cuemby/sdesim/pkg/simmetrics"
	"github.com/cuemby/sdesim/pkg/simmodel"
)

// beginService attempts to start entity's current activity. It
// returns (false, nil) when the activity is defined but its resources
// are not currently available — never an error; resource starvation
// is an ordinary outcome, not a fault (spec.md §4.5.1, §7).
func (e *Engine) beginService(entity *simmodel.FlowEntity, runDuration simmodel.SimTime) (bool, error) {
	timer := simmetrics.NewTimer()
	defer func() {
		if e.metrics {
			timer.ObserveDuration(simmetrics.SchedulingLatency)
		}
	}()

	activity, ok := e.model.GetActivity(entity.ActivityID)
	if !ok {
		e.logger.Warn().Str("entity_id", entity.ID).Str("activity_id", entity.ActivityID).
			Msg("flow entity references unknown activity; leaving it unprocessed")
		return false, nil
	}

	var acquired []*simmodel.ResourceEntity
	beginTime := entity.ArrivalTime

	if len(activity.RequiredResources) > 0 {
		excluded := make(map[string]bool, len(activity.RequiredResources))
		for _, rt := range activity.RequiredResources {
			r, ok := e.resources.AcquireExcluding(rt, excluded)
			if !ok {
				// All-or-nothing: nothing acquired so far is mutated,
				// so there is nothing to roll back.
				return false, nil
			}
			acquired = append(acquired, r)
			excluded[r.ID] = true
			if r.ReadyTime > beginTime {
				beginTime = r.ReadyTime
			}
		}
	}

	duration, err := activity.DurationSampler.Sample()
	if err != nil {
		return false, err
	}
	if duration < 0 {
		return false, &NegativeDurationError{
			ActivityID: activity.ID,
			EntityID:   entity.ID,
			SimTime:    e.clock.Now(),
			Got:        duration,
		}
	}
	endTime := beginTime + duration

	for _, r := range acquired {
		e.stats.RecordBusy(r.ID, beginTime, endTime)
		switch {
		case slices.Contains(activity.ReleasedResources, r.Type):
			r.ReadyTime = endTime
		case r.Disposable:
			r.Available = false
		default:
			// Permanently held: neither released nor disposable. Flagged
			// at model-validation time (simmodel.Warning); the engine
			// honors it rather than silently returning the resource.
			r.Available = false
		}
	}

	e.calendar.Schedule(calendar.Event{
		Time:       endTime,
		Kind:       calendar.EndService,
		EntityID:   entity.ID,
		ActivityID: activity.ID,
	}, activity.Priority)

	entity.InService = true

	waiting := beginTime - entity.ArrivalTime
	e.stats.RecordService(activity.ID, waiting, duration)

	if e.metrics {
		for _, r := range acquired {
			e.updateUtilizationMetric(r.ID, endTime)
		}
	}

	e.logger.Debug().
		Str("entity_id", entity.ID).
		Str("activity_id", activity.ID).
		Float64("begin_time", beginTime).
		Float64("end_time", endTime).
		Msg("begin_service")

	return true, nil
}

// endService completes entity's current activity: stamps its
// departure, synthesizes any generated resources, and spawns one new
// flow entity per successor activity, each arriving now and appended
// to the flow queue (spec.md §4.5.2).
func (e *Engine) endService(entity *simmodel.FlowEntity) error {
	activity, ok := e.model.GetActivity(entity.ActivityID)
	if !ok {
		e.logger.Warn().Str("entity_id", entity.ID).Str("activity_id", entity.ActivityID).
			Msg("end_service for unknown activity; entity left unprocessed")
		return nil
	}

	now := e.clock.Now()
	e.flow.UpdateDeparture(entity.ID, now)
	entity.InService = false
	e.stats.RecordCompletion(activity.ID)

	if e.metrics {
		simmetrics.ActivityCompletionsTotal.WithLabelValues(activity.ID).Inc()
	}

	for _, rt := range activity.GeneratedResources {
		e.resources.Add(&simmodel.ResourceEntity{
			ID:         e.nextID("resource"),
			Type:       rt,
			ReadyTime:  now,
			Available:  true,
			Disposable: true,
		})
	}

	for _, successorID := range activity.SuccessorActivities {
		e.flow.Add(&simmodel.FlowEntity{
			ID:          e.nextID("entity"),
			ActivityID:  successorID,
			ArrivalTime: now,
		})
	}

	e.logger.Debug().
		Str("entity_id", entity.ID).
		Str("activity_id", activity.ID).
		Float64("departure_time", now).
		Msg("end_service")

	return nil
}

// updateUtilizationMetric refreshes the ResourceUtilization gauge for
// a resource using the run's elapsed simulated time so far.
func (e *Engine) updateUtilizationMetric(resourceID string, asOf simmodel.SimTime) {
	if asOf <= 0 {
		return
	}
	simmetrics.ResourceUtilization.WithLabelValues(resourceID).Set(e.stats.Utilization(resourceID, asOf))
}
