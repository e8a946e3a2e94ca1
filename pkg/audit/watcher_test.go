package audit

import (
	"testing"
	"time"

	"github.com/cuemby/sdesim/pkg/calendar"
	"github.com/cuemby/sdesim/pkg/simevents"
	"github.com/stretchr/testify/assert"
)

func TestWatcherTracksBrokerEvents(t *testing.T) {
	broker := simevents.NewBroker("run-1")
	defer broker.Stop()

	w := NewWatcher(50 * time.Millisecond)
	w.Start(broker)
	defer w.Stop()

	broker.Publish(calendar.Event{Time: 1, Kind: calendar.EndService, ActivityID: "A"})
	broker.Publish(calendar.Event{Time: 2, Kind: calendar.EndService, ActivityID: "B"})

	assert.Eventually(t, func() bool {
		events, simTime := w.Snapshot()
		return events == 2 && simTime == 2
	}, time.Second, 10*time.Millisecond)
}

func TestWatcherStopUnsubscribes(t *testing.T) {
	broker := simevents.NewBroker("run-1")
	defer broker.Stop()

	w := NewWatcher(50 * time.Millisecond)
	w.Start(broker)
	assert.Equal(t, 1, broker.SubscriberCount())

	w.Stop()
	assert.Equal(t, 0, broker.SubscriberCount())
}
