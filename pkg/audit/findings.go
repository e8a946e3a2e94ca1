package audit

import (
	"fmt"

	"github.com/cuemby/sdesim/pkg/engine"
	"github.com/cuemby/sdesim/pkg/simmodel"
)

// Severity classifies a Finding.
type Severity int

const (
	// Info findings are expected, ordinary outcomes (e.g. a starved
	// entity left pending — spec.md §7 treats this as normal).
	Info Severity = iota
	// Violation findings mean a stated engine invariant did not hold —
	// these should never occur and indicate an engine bug.
	Violation
)

// Finding is one audit observation.
type Finding struct {
	Severity Severity
	Kind     string
	Detail   string
}

func (f Finding) String() string {
	level := "info"
	if f.Severity == Violation {
		level = "VIOLATION"
	}
	return fmt.Sprintf("[%s] %s: %s", level, f.Kind, f.Detail)
}

// Check independently re-verifies a completed replication's result
// against P3 (non-overlapping busy intervals), reports the end-of-run
// count of non-disposable resources per type as Info findings, and
// reports every pending entity as a ResourceStarvation finding. The
// resource counts are not compared against the model's initial pool,
// so Check never reports a P4 (conservation) Violation.
func Check(result *engine.RunResult) []Finding {
	var findings []Finding

	findings = append(findings, checkNonOverlappingBusy(result)...)
	findings = append(findings, checkResourceConservation(result)...)

	for _, e := range result.Pending {
		findings = append(findings, Finding{
			Severity: Info,
			Kind:     "ResourceStarvation",
			Detail:   fmt.Sprintf("entity %q never completed its activity %q (arrived at %v)", e.ID, e.ActivityID, e.ArrivalTime),
		})
	}

	return findings
}

func checkNonOverlappingBusy(result *engine.RunResult) []Finding {
	var findings []Finding
	if result.Stats == nil {
		return findings
	}
	for resourceID, row := range result.Stats.Resources() {
		intervals := row.BusyIntervals
		for i := range intervals {
			for j := i + 1; j < len(intervals); j++ {
				a, b := intervals[i], intervals[j]
				if a.Start < b.End && b.Start < a.End {
					findings = append(findings, Finding{
						Severity: Violation,
						Kind:     "OverlappingBusyInterval",
						Detail: fmt.Sprintf("resource %q has overlapping busy intervals [%v,%v] and [%v,%v]",
							resourceID, a.Start, a.End, b.Start, b.End),
					})
				}
			}
		}
	}
	return findings
}

// checkResourceConservation counts, per resource type, the final
// number of non-disposable resource instances and reports each count
// as an Info finding. It does not compare the counts against the
// model's initial resources, which the RunResult does not carry.
func checkResourceConservation(result *engine.RunResult) []Finding {
	var findings []Finding
	if result.Resources == nil {
		return findings
	}

	final := make(map[simmodel.ResourceType]int)
	for _, r := range result.Resources {
		if !r.Disposable {
			final[r.Type]++
		}
	}

	// result.Resources already reflects only what the engine still
	// holds, so an empty audit here just means nothing non-disposable
	// exists to conserve; the interesting check is done by callers
	// that keep the original model's initial count to compare against
	// (pkg/engine's own property tests do this with a known pool
	// size). Check reports the observed counts as Info for visibility.
	for t, count := range final {
		findings = append(findings, Finding{
			Severity: Info,
			Kind:     "ResourceCount",
			Detail:   fmt.Sprintf("%d non-disposable instance(s) of type %q remain at end of run", count, t),
		})
	}
	return findings
}
