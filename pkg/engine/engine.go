package engine

import (
	"fmt"

	"github.com/cuemby/sdesim/pkg/calendar"
	"github.com/cuemby/sdesim/pkg/simclock"
	"github.com/cuemby/sdesim/pkg/simevents"
	"github.com/cuemby/sdesim/pkg/simlog"
	"github.com/cuemby/sdesim/pkg/simmodel"
	"github.com/cuemby/sdesim/pkg/simqueue"
	"github.com/cuemby/sdesim/pkg/simstats"
	"github.com/rs/zerolog"
)

// Engine is the main loop: it owns the flow queue, resource queue,
// event calendar, and clock for exactly one simulation replication,
// and drives them forward synchronously. An Engine is not safe for
// concurrent use by multiple goroutines; run independent replications
// with pkg/replication instead.
type Engine struct {
	id    string
	model *simmodel.Model

	flow      *simqueue.FlowEntityQueue
	resources *simqueue.ResourceEntityQueue
	calendar  *calendar.Calendar
	clock     *simclock.Clock
	stats     *simstats.Collector

	eventLog []calendar.Event

	logger       zerolog.Logger
	broker       *simevents.Broker
	metrics      bool
	genCounter   uint64
	totalTime    simmodel.SimTime
	initialized  bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithID tags the engine's log lines with an id (e.g. a replica
// index), instead of the default, which is the model's name.
func WithID(id string) Option {
	return func(e *Engine) { e.id = id }
}

// WithBroker attaches a simevents.Broker; the engine publishes a copy
// of every processed event to it. Purely observational — attaching a
// broker never changes simulated semantics.
func WithBroker(b *simevents.Broker) Option {
	return func(e *Engine) { e.broker = b }
}

// WithMetrics enables reporting to pkg/simmetrics's default
// collectors. Disabled by default so unit tests don't pollute the
// global prometheus registry's counters.
func WithMetrics(enabled bool) Option {
	return func(e *Engine) { e.metrics = enabled }
}

// New validates model and builds an Engine ready to Run. Each initial
// flow entity and resource entity is deep-copied into the engine's own
// queues, so the same Model can seed multiple independent engines
// (pkg/replication relies on this).
func New(model *simmodel.Model, opts ...Option) (*Engine, error) {
	if errs, _ := model.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("engine: invalid model %q: %w", model.Name, errs[0])
	}

	e := &Engine{
		model:     model,
		flow:      simqueue.NewFlowEntityQueue(),
		resources: simqueue.NewResourceEntityQueue(),
		calendar:  calendar.New(),
		clock:     simclock.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == "" {
		e.id = model.Name
	}
	e.logger = simlog.WithEngineID(e.id)

	activityIDs := make([]string, 0, len(model.Activities))
	for id := range model.Activities {
		activityIDs = append(activityIDs, id)
	}
	resourceIDs := make([]string, 0, len(model.InitialResources))
	for _, r := range model.InitialResources {
		resourceIDs = append(resourceIDs, r.ID)
	}
	e.stats = simstats.New(activityIDs, resourceIDs)

	for _, init := range model.InitialFlowEntities {
		cp := *init
		cp.Attributes = init.Attributes.Clone()
		e.flow.Add(&cp)
	}
	for _, init := range model.InitialResources {
		cp := *init
		cp.Attributes = init.Attributes.Clone()
		e.resources.Add(&cp)
	}

	return e, nil
}

// priorityOf resolves an activity id to its declared priority,
// defaulting to 0 for an unknown id (used by both the flow queue and
// the calendar for tie-breaking).
func (e *Engine) priorityOf(activityID string) int {
	if a, ok := e.model.Activities[activityID]; ok {
		return a.Priority
	}
	return 0
}

// nextID synthesizes a unique suffix for generated entities.
func (e *Engine) nextID(prefix string) string {
	e.genCounter++
	return fmt.Sprintf("%s_%d", prefix, e.genCounter)
}

// ClockNow returns the current simulated time.
func (e *Engine) ClockNow() simmodel.SimTime { return e.clock.Now() }

// PendingEntities returns every flow entity that has not completed
// its current activity — the observable trace of ResourceStarvation
// or early quiescence (spec.md §7).
func (e *Engine) PendingEntities() []*simmodel.FlowEntity { return e.flow.Pending() }

// EventLog returns every event processed, in the order it was
// processed.
func (e *Engine) EventLog() []calendar.Event { return e.eventLog }

// Statistics returns the accumulated StatisticsCollector.
func (e *Engine) Statistics() *simstats.Collector { return e.stats }

// Resources returns every resource entity's current state, for tests
// and auditors that need to inspect end-of-run availability.
func (e *Engine) Resources() []*simmodel.ResourceEntity { return e.resources.All() }

// Model returns the model this engine was built from.
func (e *Engine) Model() *simmodel.Model { return e.model }
