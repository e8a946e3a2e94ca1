package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/sdesim/pkg/calendar"
	"github.com/cuemby/sdesim/pkg/sampler"
	"github.com/cuemby/sdesim/pkg/simmodel"
)

// pipelineModel builds a small randomizable model: a chain of n
// activities, each with a constant duration and (for all but the
// first) a single required/released resource type shared by a pool of
// poolSize instances, fed by entityCount initial flow entities at the
// first activity.
func pipelineModel(n, poolSize, entityCount int, duration simmodel.SimTime) *simmodel.Model {
	if n < 1 {
		n = 1
	}
	m := simmodel.NewModel("property-pipeline")
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("stage-%d", i)
		a := &simmodel.Activity{
			ID:              id,
			Priority:        i % 3,
			DurationSampler: sampler.Constant(duration),
		}
		if i+1 < n {
			a.SuccessorActivities = []string{fmt.Sprintf("stage-%d", i+1)}
		}
		if poolSize > 0 {
			a.RequiredResources = []simmodel.ResourceType{"unit"}
			a.ReleasedResources = []simmodel.ResourceType{"unit"}
		}
		m.AddActivity(a)
	}
	for i := 0; i < poolSize; i++ {
		m.AddResource(&simmodel.ResourceEntity{ID: fmt.Sprintf("unit-%d", i), Type: "unit", Available: true})
	}
	for i := 0; i < entityCount; i++ {
		m.AddFlowEntity(&simmodel.FlowEntity{ID: fmt.Sprintf("flow-%d", i), ActivityID: "stage-0", ArrivalTime: 0})
	}
	return m
}

func runPipeline(n, poolSize, entityCount int, duration simmodel.SimTime, runDuration simmodel.SimTime) (*RunResult, error) {
	m := pipelineModel(n, poolSize, entityCount, duration)
	eng, err := New(m)
	if err != nil {
		return nil, err
	}
	return eng.Run(runDuration)
}

func genSmallParams() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 4),
		gen.IntRange(0, 3),
		gen.IntRange(1, 5),
		gen.Float64Range(0.5, 3),
	).Map(func(values []interface{}) [4]float64 {
		return [4]float64{
			float64(values[0].(int)),
			float64(values[1].(int)),
			float64(values[2].(int)),
			values[3].(float64),
		}
	})
}

// TestP1MonotoneTime verifies Property P1: across any run, processed
// event timestamps never decrease.
func TestP1MonotoneTime(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("event log timestamps are non-decreasing", prop.ForAll(
		func(params [4]float64) bool {
			result, err := runPipeline(int(params[0]), int(params[1]), int(params[2]), params[3], 50)
			if err != nil {
				return false
			}
			last := -math.MaxFloat64
			for _, ev := range result.EventLog {
				if ev.Time < last {
					return false
				}
				last = ev.Time
			}
			return true
		},
		genSmallParams(),
	))

	properties.TestingRun(t)
}

// TestP3NonOverlappingBusy verifies Property P3: for any single
// resource, recorded busy intervals never overlap.
func TestP3NonOverlappingBusy(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("busy intervals per resource are pairwise non-overlapping", prop.ForAll(
		func(params [4]float64) bool {
			result, err := runPipeline(int(params[0]), int(params[1]), int(params[2]), params[3], 50)
			if err != nil {
				return false
			}
			for _, row := range result.Stats.Resources() {
				for i := range row.BusyIntervals {
					for j := range row.BusyIntervals {
						if i == j {
							continue
						}
						a, b := row.BusyIntervals[i], row.BusyIntervals[j]
						if a.Start < b.End && b.Start < a.End {
							return false
						}
					}
				}
			}
			return true
		},
		genSmallParams(),
	))

	properties.TestingRun(t)
}

// TestP5EndServiceBeforeBeginServiceAtTies verifies Property P5: when
// two events share the same timestamp, END_SERVICE sorts first.
func TestP5EndServiceBeforeBeginServiceAtTies(t *testing.T) {
	c := calendar.New()
	c.Schedule(calendar.Event{Time: 3, Kind: calendar.BeginService, EntityID: "b"}, 0)
	c.Schedule(calendar.Event{Time: 3, Kind: calendar.EndService, EntityID: "e"}, 0)

	first, ok := c.Pop()
	require.True(t, ok)
	require.Equal(t, calendar.EndService, first.Kind)
}

// TestP6AtomicAcquisitionLeavesNoPartialMutation verifies Property P6:
// a failed begin_service attempt must not change any resource's
// ready_time or availability.
func TestP6AtomicAcquisitionLeavesNoPartialMutation(t *testing.T) {
	m := simmodel.NewModel("atomic")
	m.AddActivity(&simmodel.Activity{
		ID:                "needs-two-types",
		DurationSampler:   sampler.Constant(1),
		RequiredResources: []simmodel.ResourceType{"a", "b"},
	})
	m.AddResource(&simmodel.ResourceEntity{ID: "a-1", Type: "a", Available: true, ReadyTime: 0})
	// No "b" resource exists, so acquisition must fail entirely.
	m.AddFlowEntity(&simmodel.FlowEntity{ID: "f1", ActivityID: "needs-two-types", ArrivalTime: 0})

	eng, err := New(m)
	require.NoError(t, err)

	result, err := eng.Run(10)
	require.NoError(t, err)

	require.Len(t, result.Resources, 1)
	assert.Equal(t, true, result.Resources[0].Available)
	assert.Equal(t, simmodel.SimTime(0), result.Resources[0].ReadyTime)
	require.Len(t, result.Pending, 1)
}

// TestP2ServiceBracketing verifies Property P2 for the no-resource
// case: a flow entity's recorded waiting+service time exactly brackets
// its activity's single busy window, with its departure time equal to
// begin_time + sampled duration.
func TestP2ServiceBracketing(t *testing.T) {
	m := simmodel.NewModel("bracket")
	m.AddActivity(&simmodel.Activity{ID: "only", DurationSampler: sampler.Constant(3)})
	m.AddFlowEntity(&simmodel.FlowEntity{ID: "f1", ActivityID: "only", ArrivalTime: 2})

	eng, err := New(m)
	require.NoError(t, err)

	result, err := eng.Run(math.Inf(1))
	require.NoError(t, err)

	require.Len(t, result.EventLog, 1)
	ev := result.EventLog[0]
	assert.Equal(t, calendar.EndService, ev.Kind)
	assert.Equal(t, 5.0, ev.Time, "begin_time (2, no resource delay) + duration 3")

	row := result.Stats.Activity("only")
	require.NotNil(t, row)
	assert.Equal(t, []simmodel.SimTime{0}, row.WaitingTimes)
	assert.Equal(t, []simmodel.SimTime{3}, row.ServiceTimes)
}

// TestP4ResourceConservation verifies Property P4: a non-disposable,
// always-released resource's identity and type survive the run
// unchanged — it is never consumed or duplicated.
func TestP4ResourceConservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("released non-disposable resources are conserved", prop.ForAll(
		func(params [4]float64) bool {
			n, pool, entities, dur := int(params[0]), int(params[1]), int(params[2]), params[3]
			if pool == 0 {
				pool = 1
			}
			result, err := runPipeline(n, pool, entities, dur, 50)
			if err != nil {
				return false
			}
			count := 0
			for _, r := range result.Resources {
				if r.Type == "unit" {
					count++
				}
			}
			return count == pool
		},
		genSmallParams(),
	))

	properties.TestingRun(t)
}

// TestP7ProgressOrQuiescence verifies Property P7: the engine always
// terminates, either because it reached the requested duration or
// because the calendar emptied out with entities left pending.
func TestP7ProgressOrQuiescence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("run always terminates at duration or quiescence", prop.ForAll(
		func(params [4]float64) bool {
			n, pool, entities, dur := int(params[0]), int(params[1]), int(params[2]), params[3]
			result, err := runPipeline(n, pool, entities, dur, 50)
			if err != nil {
				return false
			}
			if result.TotalTime < 50 {
				// Stopped early: only legitimate if nothing was left
				// scheduled (true quiescence), not a premature exit.
				return result.CalendarRemaining == 0
			}
			return true
		},
		genSmallParams(),
	))

	properties.TestingRun(t)
}

// TestP8Determinism verifies Property P8: two runs with identical
// model, seed, and duration produce identical event logs.
func TestP8Determinism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("same model shape yields identical event logs across two engines", prop.ForAll(
		func(params [4]float64) bool {
			n, pool, entities, dur := int(params[0]), int(params[1]), int(params[2]), params[3]
			r1, err1 := runPipeline(n, pool, entities, dur, 50)
			r2, err2 := runPipeline(n, pool, entities, dur, 50)
			if err1 != nil || err2 != nil {
				return err1 == nil && err2 == nil
			}
			if len(r1.EventLog) != len(r2.EventLog) {
				return false
			}
			for i := range r1.EventLog {
				a, b := r1.EventLog[i], r2.EventLog[i]
				if a.Time != b.Time || a.Kind != b.Kind || a.ActivityID != b.ActivityID {
					return false
				}
			}
			return true
		},
		genSmallParams(),
	))

	properties.TestingRun(t)
}
