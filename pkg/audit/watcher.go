package audit

import (
	"sync"
	"time"

	"github.com/cuemby/sdesim/pkg/simevents"
	"github.com/cuemby/sdesim/pkg/simlog"
	"github.com/rs/zerolog"
)

// Watcher periodically logs replication progress by tailing a
// simevents.Broker, for long-running replications where a completed
// result is too long to wait for. It never touches the Engine itself.
type Watcher struct {
	interval time.Duration
	logger   zerolog.Logger

	mu           sync.Mutex
	eventsSeen   int
	lastSimTime  float64
	lastActivity string

	sub    simevents.Subscriber
	broker *simevents.Broker
	stopCh chan struct{}
	done   chan struct{}
}

// NewWatcher creates a Watcher that logs a progress line every
// interval once Start is called.
func NewWatcher(interval time.Duration) *Watcher {
	return &Watcher{
		interval: interval,
		logger:   simlog.WithComponent("audit"),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start subscribes to broker and begins the reporting loop in its own
// goroutine. Call Stop to end it.
func (w *Watcher) Start(broker *simevents.Broker) {
	w.broker = broker
	w.sub = broker.Subscribe()
	go w.run()
}

// Stop ends the reporting loop and unsubscribes from the broker.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.done
	if w.broker != nil {
		w.broker.Unsubscribe(w.sub)
	}
}

func (w *Watcher) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-w.sub:
			if !ok {
				return
			}
			w.mu.Lock()
			w.eventsSeen++
			w.lastSimTime = n.Event.Time
			w.lastActivity = n.Event.ActivityID
			w.mu.Unlock()
		case <-ticker.C:
			w.logProgress()
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) logProgress() {
	w.mu.Lock()
	events, simTime, activity := w.eventsSeen, w.lastSimTime, w.lastActivity
	w.mu.Unlock()

	w.logger.Info().
		Int("events_processed", events).
		Float64("sim_time", simTime).
		Str("last_activity", activity).
		Msg("replication progress")
}

// Snapshot returns the watcher's current counters, for tests.
func (w *Watcher) Snapshot() (eventsSeen int, lastSimTime float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.eventsSeen, w.lastSimTime
}
