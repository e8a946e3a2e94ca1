package simevents

import (
	"sync"
	"time"

	"github.com/cuemby/sdesim/pkg/calendar"
)

// Notification wraps one processed calendar.Event with the wall-clock
// time the broker received it, for observers that want to correlate
// simulated time against real time (e.g. a live dashboard).
type Notification struct {
	Event     calendar.Event
	Received  time.Time
	RunID     string
}

// Subscriber is a channel that receives notifications.
type Subscriber chan *Notification

// Broker fans out processed events to any number of subscribers.
// One Broker may be shared by several Engines since it is safe for
// concurrent use.
type Broker struct {
	subscribers map[Subscriber]bool
	mu          sync.RWMutex
	eventCh     chan *Notification
	stopCh      chan struct{}
	stopOnce    sync.Once
	runID       string
}

// NewBroker starts a broker's distribution loop. runID tags every
// notification the broker emits (e.g. a replica index), useful when
// one broker is shared across replications.
func NewBroker(runID string) *Broker {
	b := &Broker{
		subscribers: make(map[Subscriber]bool),
		eventCh:     make(chan *Notification, 256),
		stopCh:      make(chan struct{}),
		runID:       runID,
	}
	go b.run()
	return b
}

// Stop shuts the broker down and closes every subscriber channel.
func (b *Broker) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopCh)

		b.mu.Lock()
		defer b.mu.Unlock()
		for sub := range b.subscribers {
			delete(b.subscribers, sub)
			close(sub)
		}
	})
}

// Subscribe returns a new channel that receives every future
// notification until Unsubscribe or Stop.
func (b *Broker) Subscribe() Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(Subscriber, 64)
	b.subscribers[sub] = true
	return sub
}

// Unsubscribe removes and closes a subscription.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[sub]; !ok {
		return
	}
	delete(b.subscribers, sub)
	close(sub)
}

// Publish queues ev for broadcast. Never blocks the caller beyond the
// broker's internal buffer filling up, and is a no-op after Stop.
func (b *Broker) Publish(ev calendar.Event) {
	n := &Notification{Event: ev, Received: time.Now(), RunID: b.runID}
	select {
	case b.eventCh <- n:
	case <-b.stopCh:
	}
}

func (b *Broker) run() {
	for {
		select {
		case n := <-b.eventCh:
			b.broadcast(n)
		case <-b.stopCh:
			return
		}
	}
}

func (b *Broker) broadcast(n *Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers {
		select {
		case sub <- n:
		default:
			// Subscriber buffer full: drop rather than block the engine.
		}
	}
}

// SubscriberCount reports the number of active subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
