/*
Package sampler provides a handful of concrete DurationSampler
implementations for tests, demos, and the CLI. Real distributions
belong to the caller — spec.md §1 keeps "random-number distributions
beyond the contract that durations are produced by a caller-supplied
sampler" out of the engine's scope — so this package stays deliberately
small.

Every constructor here owns a private *rand.Rand rather than reading
from the package-level global generator, so that two replications
seeded differently (or the same) never share mutable RNG state
(spec.md §9, "Implicit global RNG state").
*/
package sampler

import (
	"fmt"
	"math/rand"
)

// Sampler is the one-method duration capability every constructor here
// returns. Its method set is that of simmodel.DurationSampler
// (simmodel.SimTime is an alias of float64), so a Sampler can be used
// wherever a model expects a DurationSampler.
type Sampler interface {
	Sample() (float64, error)
}

// constant always returns the same duration.
type constant struct {
	d float64
}

// Constant returns a sampler that always yields d. Its Sample errors if
// d is negative, since a sampler must never return a negative duration
// (spec.md §4.5.1/§7 NegativeDuration).
func Constant(d float64) Sampler {
	return &constant{d: d}
}

func (c *constant) Sample() (float64, error) {
	if c.d < 0 {
		return 0, fmt.Errorf("sampler: constant duration %v is negative", c.d)
	}
	return c.d, nil
}

// uniform draws uniformly from [lo, hi].
type uniform struct {
	rng    *rand.Rand
	lo, hi float64
}

// Uniform returns a sampler drawing uniformly from [lo, hi], using its
// own *rand.Rand seeded by seed.
func Uniform(seed int64, lo, hi float64) Sampler {
	return &uniform{rng: rand.New(rand.NewSource(seed)), lo: lo, hi: hi}
}

func (u *uniform) Sample() (float64, error) {
	if u.lo < 0 || u.hi < u.lo {
		return 0, fmt.Errorf("sampler: invalid uniform range [%v, %v]", u.lo, u.hi)
	}
	return u.lo + u.rng.Float64()*(u.hi-u.lo), nil
}

// exponential draws from an exponential distribution with the given mean.
type exponential struct {
	rng  *rand.Rand
	mean float64
}

// Exponential returns a sampler drawing from an exponential
// distribution with the given mean, using its own *rand.Rand seeded
// by seed.
func Exponential(seed int64, mean float64) Sampler {
	return &exponential{rng: rand.New(rand.NewSource(seed)), mean: mean}
}

func (e *exponential) Sample() (float64, error) {
	if e.mean <= 0 {
		return 0, fmt.Errorf("sampler: exponential mean %v must be positive", e.mean)
	}
	return e.rng.ExpFloat64() * e.mean, nil
}
