package simmodel

import (
	"fmt"

	"github.com/cuemby/sdesim/pkg/sampler"
)

// DurationSpec is the declarative, serializable description of a
// DurationSampler: a Kind name plus the handful of parameters that
// kind needs. It exists because DurationSampler is an interface — a
// live Model can't round-trip through YAML or a simstore record on
// its own, so the CLI's model files and simstore's persisted models
// both speak DurationSpec/ModelSpec instead of the runtime Model.
type DurationSpec struct {
	Kind string  `yaml:"kind" json:"kind"`
	Seed int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	Low  SimTime `yaml:"low,omitempty" json:"low,omitempty"`
	High SimTime `yaml:"high,omitempty" json:"high,omitempty"`
	Mean SimTime `yaml:"mean,omitempty" json:"mean,omitempty"`
}

// Build constructs the concrete DurationSampler this spec describes.
func (d DurationSpec) Build() (DurationSampler, error) {
	switch d.Kind {
	case "constant":
		return sampler.Constant(d.High), nil
	case "uniform":
		return sampler.Uniform(d.Seed, d.Low, d.High), nil
	case "exponential":
		return sampler.Exponential(d.Seed, d.Mean), nil
	default:
		return nil, fmt.Errorf("simmodel: unknown duration sampler kind %q", d.Kind)
	}
}

// ActivitySpec is the declarative form of Activity.
type ActivitySpec struct {
	ID                  string         `yaml:"id" json:"id"`
	Name                string         `yaml:"name,omitempty" json:"name,omitempty"`
	Priority            int            `yaml:"priority,omitempty" json:"priority,omitempty"`
	Duration            DurationSpec   `yaml:"duration" json:"duration"`
	RequiredResources   []ResourceType `yaml:"required_resources,omitempty" json:"required_resources,omitempty"`
	ReleasedResources   []ResourceType `yaml:"released_resources,omitempty" json:"released_resources,omitempty"`
	GeneratedResources  []ResourceType `yaml:"generated_resources,omitempty" json:"generated_resources,omitempty"`
	SuccessorActivities []string       `yaml:"successor_activities,omitempty" json:"successor_activities,omitempty"`
}

// FlowEntitySpec is the declarative form of an initial FlowEntity.
type FlowEntitySpec struct {
	ID          string  `yaml:"id" json:"id"`
	ActivityID  string  `yaml:"activity_id" json:"activity_id"`
	ArrivalTime SimTime `yaml:"arrival_time,omitempty" json:"arrival_time,omitempty"`
}

// ResourceSpec is the declarative form of an initial ResourceEntity.
type ResourceSpec struct {
	ID         string       `yaml:"id" json:"id"`
	Type       ResourceType `yaml:"type" json:"type"`
	ReadyTime  SimTime      `yaml:"ready_time,omitempty" json:"ready_time,omitempty"`
	Available  bool         `yaml:"available" json:"available"`
	Disposable bool         `yaml:"disposable,omitempty" json:"disposable,omitempty"`
}

// ModelSpec is the declarative, marshalable form of a Model: what a
// model file on disk or a simstore record actually holds. ToModel
// builds the runtime Model the engine needs; FromModel is deliberately
// absent — a live Model has already erased the sampler's declarative
// shape (a *rand.Rand carries no Kind/Seed it can report back), so
// only models built through ModelSpec in the first place can be
// persisted faithfully.
type ModelSpec struct {
	Name       string           `yaml:"name" json:"name"`
	Activities []ActivitySpec   `yaml:"activities" json:"activities"`
	Entities   []FlowEntitySpec `yaml:"flow_entities,omitempty" json:"flow_entities,omitempty"`
	Resources  []ResourceSpec   `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// ToModel builds a runtime Model from this spec, constructing a fresh
// DurationSampler instance per activity.
func (s *ModelSpec) ToModel() (*Model, error) {
	m := NewModel(s.Name)

	for _, as := range s.Activities {
		sampler, err := as.Duration.Build()
		if err != nil {
			return nil, fmt.Errorf("activity %q: %w", as.ID, err)
		}
		if !m.AddActivity(&Activity{
			ID:                  as.ID,
			Name:                as.Name,
			Priority:            as.Priority,
			DurationSampler:     sampler,
			RequiredResources:   as.RequiredResources,
			ReleasedResources:   as.ReleasedResources,
			GeneratedResources:  as.GeneratedResources,
			SuccessorActivities: as.SuccessorActivities,
		}) {
			return nil, &ModelStructureError{ActivityID: as.ID, Detail: "duplicate activity id"}
		}
	}

	for _, fe := range s.Entities {
		m.AddFlowEntity(&FlowEntity{ID: fe.ID, ActivityID: fe.ActivityID, ArrivalTime: fe.ArrivalTime})
	}
	for _, re := range s.Resources {
		m.AddResource(&ResourceEntity{
			ID:         re.ID,
			Type:       re.Type,
			ReadyTime:  re.ReadyTime,
			Available:  re.Available,
			Disposable: re.Disposable,
		})
	}

	return m, nil
}
