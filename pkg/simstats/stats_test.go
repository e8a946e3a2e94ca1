package simstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsEveryRow(t *testing.T) {
	c := New([]string{"a1", "a2"}, []string{"r1"})

	require.NotNil(t, c.Activity("a1"))
	require.NotNil(t, c.Activity("a2"))
	require.NotNil(t, c.Resource("r1"))
	assert.Nil(t, c.Activity("ghost"))
}

func TestRecordServiceAccumulates(t *testing.T) {
	c := New(nil, nil)
	c.RecordService("a1", 1, 4)
	c.RecordService("a1", 2, 5)

	row := c.Activity("a1")
	require.NotNil(t, row)
	assert.Equal(t, []float64{1, 2}, row.WaitingTimes)
	assert.Equal(t, []float64{4, 5}, row.ServiceTimes)
}

func TestRecordCompletionIncrements(t *testing.T) {
	c := New(nil, nil)
	c.RecordCompletion("a1")
	c.RecordCompletion("a1")
	c.RecordCompletion("a1")

	assert.Equal(t, 3, c.Activity("a1").CompletionCount)
}

func TestRecordBusyAndUtilization(t *testing.T) {
	c := New(nil, nil)
	c.RecordBusy("r1", 0, 4)
	c.RecordBusy("r1", 6, 8)

	assert.Equal(t, 0.6, c.Utilization("r1", 10))
}

func TestUtilizationZeroOnNoData(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, 0.0, c.Utilization("ghost", 10))
	assert.Equal(t, 0.0, c.Utilization("r1", 0))
}

func TestLazilySeededRowsAppearInSnapshots(t *testing.T) {
	c := New(nil, nil)
	c.RecordService("late-activity", 1, 1)

	assert.Contains(t, c.Activities(), "late-activity")
}
