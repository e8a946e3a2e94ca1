package engine

import (
	"github.com/cuemby/sdesim/pkg/calendar"
	"github.com/cuemby/sdesim/pkg/simmetrics"
	"github.com/cuemby/sdesim/pkg/simmodel"
	"github.com/cuemby/sdesim/pkg/simstats"
)

// RunResult bundles everything a caller typically wants out of one
// replication, so pkg/replication and pkg/audit don't each have to
// re-derive it from the Engine's accessors.
type RunResult struct {
	EngineID  string
	TotalTime simmodel.SimTime
	EventLog  []calendar.Event
	Stats     *simstats.Collector
	Pending   []*simmodel.FlowEntity
	Resources []*simmodel.ResourceEntity

	// CalendarRemaining is the number of still-scheduled events left
	// unprocessed when Run returned. Zero means the run ended by
	// quiescence (or exhausted its own future); non-zero means Run
	// stopped because it hit its requested duration with work still
	// on the calendar.
	CalendarRemaining int
}

// Run drives the engine forward until the calendar is empty or the
// clock reaches duration (pass math.Inf(1) to run to quiescence).
func (e *Engine) Run(duration simmodel.SimTime) (*RunResult, error) {
	timer := simmetrics.NewTimer()
	defer func() {
		if e.metrics {
			timer.ObserveDuration(simmetrics.EngineRunDuration)
		}
	}()

	if err := e.drainEligible(duration); err != nil {
		return nil, err
	}

	for e.calendar.Len() > 0 && e.clock.Now() < duration {
		ev, ok := e.calendar.Pop()
		if !ok {
			break
		}
		if err := e.clock.Advance(ev.Time); err != nil {
			return nil, err
		}
		e.eventLog = append(e.eventLog, ev)
		if e.broker != nil {
			e.broker.Publish(ev)
		}

		switch ev.Kind {
		case calendar.BeginService:
			entity, ok := e.flow.Get(ev.EntityID)
			if !ok || entity.ActivityID != ev.ActivityID {
				e.logger.Debug().Str("entity_id", ev.EntityID).Str("activity_id", ev.ActivityID).
					Msg("begin_service event for unknown entity/activity pair, skipping")
				continue
			}
			if _, err := e.beginService(entity, duration); err != nil {
				return nil, err
			}
		case calendar.EndService:
			entity, ok := e.flow.Get(ev.EntityID)
			if !ok || entity.ActivityID != ev.ActivityID {
				e.logger.Debug().Str("entity_id", ev.EntityID).Str("activity_id", ev.ActivityID).
					Msg("end_service event for unknown entity/activity pair, skipping")
				continue
			}
			if err := e.endService(entity); err != nil {
				return nil, err
			}
		}

		if err := e.drainEligible(duration); err != nil {
			return nil, err
		}
	}

	e.totalTime = e.clock.Now()
	e.initialized = true

	if e.metrics {
		simmetrics.PendingEntities.Set(float64(len(e.flow.Pending())))
	}

	return &RunResult{
		EngineID:          e.id,
		TotalTime:         e.totalTime,
		EventLog:          e.eventLog,
		Stats:             e.stats,
		Pending:           e.flow.Pending(),
		Resources:         e.resources.All(),
		CalendarRemaining: e.calendar.Len(),
	}, nil
}

// TotalTime returns the simulated time recorded at Finalize (equal to
// ClockNow() after Run returns).
func (e *Engine) TotalTime() simmodel.SimTime { return e.totalTime }

// drainEligible repeatedly attempts begin_service for the next
// unprocessed flow entity, in priority/arrival order. It stops at the
// first failed acquisition (spec.md §4.5 step 2): resources only
// become available again through a future END_SERVICE event, so
// rescanning the rest of the queue in the same phase cannot help —
// this is the fix for the original implementation's unchecked retry
// loop (spec.md's Redesign Flags).
func (e *Engine) drainEligible(duration simmodel.SimTime) error {
	for {
		if e.clock.Now() >= duration {
			return nil
		}
		entity, ok := e.flow.NextUnprocessed(e.priorityOf)
		if !ok {
			return nil
		}
		started, err := e.beginService(entity, duration)
		if err != nil {
			return err
		}
		if !started {
			return nil
		}
	}
}
