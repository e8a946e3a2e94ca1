package simqueue

import (
	"testing"

	"github.com/cuemby/sdesim/pkg/simmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowEntityQueueNextUnprocessedByArrivalTime(t *testing.T) {
	q := NewFlowEntityQueue()
	q.Add(&simmodel.FlowEntity{ID: "late", ArrivalTime: 5})
	q.Add(&simmodel.FlowEntity{ID: "early", ArrivalTime: 1})

	next, ok := q.NextUnprocessed(nil)
	require.True(t, ok)
	assert.Equal(t, "early", next.ID)
}

func TestFlowEntityQueueSkipsProcessedAndInService(t *testing.T) {
	q := NewFlowEntityQueue()
	q.Add(&simmodel.FlowEntity{ID: "done", ArrivalTime: 1, DepartureTime: 2})
	q.Add(&simmodel.FlowEntity{ID: "started", ArrivalTime: 1, InService: true})
	q.Add(&simmodel.FlowEntity{ID: "waiting", ArrivalTime: 3})

	next, ok := q.NextUnprocessed(nil)
	require.True(t, ok)
	assert.Equal(t, "waiting", next.ID)
}

func TestFlowEntityQueueTieBreaksByActivityPriority(t *testing.T) {
	q := NewFlowEntityQueue()
	q.Add(&simmodel.FlowEntity{ID: "low", ActivityID: "a-low", ArrivalTime: 1})
	q.Add(&simmodel.FlowEntity{ID: "high", ActivityID: "a-high", ArrivalTime: 1})

	priorityOf := func(activityID string) int {
		if activityID == "a-high" {
			return 10
		}
		return 0
	}

	next, ok := q.NextUnprocessed(priorityOf)
	require.True(t, ok)
	assert.Equal(t, "high", next.ID)
}

func TestFlowEntityQueueTieBreaksByInsertionOrderWithoutPriority(t *testing.T) {
	q := NewFlowEntityQueue()
	q.Add(&simmodel.FlowEntity{ID: "first", ArrivalTime: 1})
	q.Add(&simmodel.FlowEntity{ID: "second", ArrivalTime: 1})

	next, ok := q.NextUnprocessed(nil)
	require.True(t, ok)
	assert.Equal(t, "first", next.ID)
}

func TestFlowEntityQueueNextUnprocessedExhausted(t *testing.T) {
	q := NewFlowEntityQueue()
	q.Add(&simmodel.FlowEntity{ID: "done", DepartureTime: 1})

	_, ok := q.NextUnprocessed(nil)
	assert.False(t, ok)
}

func TestFlowEntityQueueUpdateDeparture(t *testing.T) {
	q := NewFlowEntityQueue()
	q.Add(&simmodel.FlowEntity{ID: "f1"})

	assert.True(t, q.UpdateDeparture("f1", 9))
	e, _ := q.Get("f1")
	assert.Equal(t, 9.0, e.DepartureTime)

	assert.False(t, q.UpdateDeparture("ghost", 1))
}

func TestFlowEntityQueuePending(t *testing.T) {
	q := NewFlowEntityQueue()
	q.Add(&simmodel.FlowEntity{ID: "done", DepartureTime: 1})
	q.Add(&simmodel.FlowEntity{ID: "waiting"})

	pending := q.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "waiting", pending[0].ID)
}
