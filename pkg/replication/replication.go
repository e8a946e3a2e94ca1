package replication

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuemby/sdesim/pkg/engine"
	"github.com/cuemby/sdesim/pkg/simlog"
	"github.com/cuemby/sdesim/pkg/simmetrics"
	"github.com/cuemby/sdesim/pkg/simmodel"
)

// Option configures a Run call.
type Option func(*runConfig)

type runConfig struct {
	metrics bool
}

// WithMetrics enables per-replica reporting to pkg/simmetrics's
// default collectors (disabled by default, matching engine.Engine's
// own opt-in gate, so unit tests don't pollute the global registry).
func WithMetrics(enabled bool) Option {
	return func(c *runConfig) { c.metrics = enabled }
}

// SamplerFactory builds the DurationSampler a given activity should
// use for replica index i. Most callers pass a factory closing over a
// base seed and offsetting it by i, so replicas are independently
// seeded but reproducible as a set.
type SamplerFactory func(replicaIndex int, activity *simmodel.Activity) (simmodel.DurationSampler, error)

// Result pairs one replica's outcome with its index, since results
// arrive from concurrent goroutines in completion order rather than
// replica order.
type Result struct {
	ReplicaIndex int
	Run          *engine.RunResult
	Err          error
}

// Run builds n independent engines from model — each with every
// activity's DurationSampler replaced by one newSampler produces for
// that replica — and runs them concurrently, one goroutine per
// replica, joined by a sync.WaitGroup. It returns every Result in
// replica-index order once all replicas have finished.
//
// Run returns an error only if n < 1 or model itself is structurally
// invalid (caught once up front, before any goroutine starts); a single
// replica's runtime error is carried in its own Result.Err rather than
// aborting the others. ctx is checked before each replica starts, so
// cancelling it skips any replica not yet underway — a replica already
// running always finishes, since engine.Engine.Run takes no context
// and cannot be interrupted mid-replication.
func Run(ctx context.Context, model *simmodel.Model, n int, newSampler SamplerFactory, duration simmodel.SimTime, opts ...Option) ([]Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("replication: n must be >= 1, got %d", n)
	}
	if errs, _ := model.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("replication: invalid model %q: %w", model.Name, errs[0])
	}

	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := simlog.WithComponent("replication")
	results := make([]Result, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[idx] = Result{ReplicaIndex: idx, Err: err}
				if cfg.metrics {
					simmetrics.ReplicationsTotal.WithLabelValues("error").Inc()
				}
				return
			}

			replicaModel, err := cloneWithSamplers(model, idx, newSampler)
			if err != nil {
				results[idx] = Result{ReplicaIndex: idx, Err: err}
				if cfg.metrics {
					simmetrics.ReplicationsTotal.WithLabelValues("error").Inc()
				}
				return
			}

			eng, err := engine.New(replicaModel,
				engine.WithID(fmt.Sprintf("%s-replica-%d", model.Name, idx)),
				engine.WithMetrics(cfg.metrics),
			)
			if err != nil {
				results[idx] = Result{ReplicaIndex: idx, Err: err}
				if cfg.metrics {
					simmetrics.ReplicationsTotal.WithLabelValues("error").Inc()
				}
				return
			}

			run, err := eng.Run(duration)
			if err != nil {
				logger.Error().Err(err).Int("replica", idx).Msg("replication run failed")
				if cfg.metrics {
					simmetrics.ReplicationsTotal.WithLabelValues("error").Inc()
				}
				results[idx] = Result{ReplicaIndex: idx, Run: run, Err: err}
				return
			}

			if cfg.metrics {
				outcome := "quiescent"
				if run.CalendarRemaining > 0 {
					outcome = "duration_reached"
				} else if run.TotalTime > 0 {
					outcome = "completed"
				}
				simmetrics.ReplicationsTotal.WithLabelValues(outcome).Inc()
			}
			results[idx] = Result{ReplicaIndex: idx, Run: run, Err: nil}
		}(i)
	}
	wg.Wait()

	return results, nil
}

// cloneWithSamplers builds a copy of model whose activities carry
// fresh DurationSampler instances from newSampler instead of sharing
// the template model's samplers, so concurrently running replicas
// never touch the same stateful sampler (e.g. a seeded *rand.Rand).
func cloneWithSamplers(model *simmodel.Model, replicaIndex int, newSampler SamplerFactory) (*simmodel.Model, error) {
	clone := simmodel.NewModel(model.Name)

	for id, a := range model.Activities {
		sampler, err := newSampler(replicaIndex, a)
		if err != nil {
			return nil, fmt.Errorf("replica %d: activity %q: %w", replicaIndex, id, err)
		}
		clone.AddActivity(&simmodel.Activity{
			ID:                  a.ID,
			Name:                a.Name,
			Priority:            a.Priority,
			DurationSampler:     sampler,
			RequiredResources:   a.RequiredResources,
			ReleasedResources:   a.ReleasedResources,
			GeneratedResources:  a.GeneratedResources,
			SuccessorActivities: a.SuccessorActivities,
		})
	}
	for _, e := range model.InitialFlowEntities {
		cp := *e
		cp.Attributes = e.Attributes.Clone()
		clone.AddFlowEntity(&cp)
	}
	for _, r := range model.InitialResources {
		cp := *r
		cp.Attributes = r.Attributes.Clone()
		clone.AddResource(&cp)
	}

	return clone, nil
}
