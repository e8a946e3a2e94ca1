package simevents

import (
	"testing"
	"time"

	"github.com/cuemby/sdesim/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversToSubscriber(t *testing.T) {
	b := NewBroker("run-1")
	defer b.Stop()

	sub := b.Subscribe()
	assert.Equal(t, 1, b.SubscriberCount())

	b.Publish(calendar.Event{Time: 3, EntityID: "e1"})

	select {
	case n := <-sub:
		require.NotNil(t, n)
		assert.Equal(t, "e1", n.Event.EntityID)
		assert.Equal(t, "run-1", n.RunID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestBrokerUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker("run-1")
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)
	assert.Equal(t, 0, b.SubscriberCount())

	_, open := <-sub
	assert.False(t, open)
}

func TestBrokerPublishAfterStopDoesNotBlock(t *testing.T) {
	b := NewBroker("run-1")
	b.Stop()

	done := make(chan struct{})
	go func() {
		b.Publish(calendar.Event{Time: 1})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked after Stop")
	}
}
