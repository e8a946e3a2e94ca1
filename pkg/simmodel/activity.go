package simmodel

// DurationSampler is a first-class capability: "sample a non-negative
// duration". Implementations may be stateless (a constant) or
// stateful (a seeded RNG); the engine treats it opaquely and never
// shares one sampler instance across concurrent replications.
type DurationSampler interface {
	Sample() (SimTime, error)
}

// Activity is a static node in the model graph.
type Activity struct {
	ID   string
	Name string

	// Priority breaks ties: higher goes first, both in the event
	// calendar (same-timestamp, same-kind events) and in the flow
	// queue's drain-phase selection (same arrival time).
	Priority int

	DurationSampler DurationSampler

	RequiredResources   []ResourceType
	ReleasedResources   []ResourceType
	GeneratedResources  []ResourceType
	SuccessorActivities []string
}

// releases reports whether a resource of the given type is released
// (returned to the pool, ready again at end_time) by this activity.
func (a *Activity) releases(t ResourceType) bool {
	for _, rt := range a.ReleasedResources {
		if rt == t {
			return true
		}
	}
	return false
}

// Model is the static topology: activities, plus the initial
// population of flow and resource entities.
type Model struct {
	Name                string
	Activities          map[string]*Activity
	InitialFlowEntities []*FlowEntity
	InitialResources    []*ResourceEntity
}

// NewModel returns an empty, named Model ready for AddActivity /
// AddFlowEntity / AddResource calls.
func NewModel(name string) *Model {
	return &Model{
		Name:       name,
		Activities: make(map[string]*Activity),
	}
}

// AddActivity registers an activity. It returns false (and does not
// overwrite) if an activity with the same id is already present.
func (m *Model) AddActivity(a *Activity) bool {
	if _, exists := m.Activities[a.ID]; exists {
		return false
	}
	m.Activities[a.ID] = a
	return true
}

// AddFlowEntity appends an initial flow entity.
func (m *Model) AddFlowEntity(e *FlowEntity) {
	m.InitialFlowEntities = append(m.InitialFlowEntities, e)
}

// AddResource appends an initial resource entity.
func (m *Model) AddResource(r *ResourceEntity) {
	m.InitialResources = append(m.InitialResources, r)
}

// GetActivity looks up an activity by id.
func (m *Model) GetActivity(id string) (*Activity, bool) {
	a, ok := m.Activities[id]
	return a, ok
}
