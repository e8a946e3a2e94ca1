package simmodel

import "fmt"

// ModelStructureError reports one structural defect: a dangling
// successor id or an initial flow entity referencing an unknown
// activity (both found by Model.Validate), or a duplicate activity id
// (found earlier, by ModelSpec.ToModel, since AddActivity refuses the
// second registration before a Model even exists to validate).
type ModelStructureError struct {
	ActivityID string
	Detail     string
}

func (e *ModelStructureError) Error() string {
	return fmt.Sprintf("model structure error in activity %q: %s", e.ActivityID, e.Detail)
}

// Warning is a non-fatal structural observation surfaced by Validate
// that does not prevent a run but may indicate an unintended model
// (spec.md §9 open question 2: a required resource that is neither
// released nor disposable becomes permanently held).
type Warning struct {
	ActivityID string
	Detail     string
}

func (w Warning) String() string {
	return fmt.Sprintf("warning in activity %q: %s", w.ActivityID, w.Detail)
}

// Validate checks structural soundness: every successor activity id
// must resolve to a real activity, and every initial flow entity's
// activity id must resolve to a real activity. It returns every
// defect found (not just the first) as *ModelStructureError, plus any
// non-fatal Warnings. A nil error slice means the model is
// structurally sound; Warnings may be non-empty even then.
func (m *Model) Validate() ([]error, []Warning) {
	var errs []error
	var warnings []Warning

	for id, a := range m.Activities {
		for _, successor := range a.SuccessorActivities {
			if _, ok := m.Activities[successor]; !ok {
				errs = append(errs, &ModelStructureError{
					ActivityID: id,
					Detail:     fmt.Sprintf("successor activity %q does not exist", successor),
				})
			}
		}

		for _, required := range a.RequiredResources {
			if a.releases(required) {
				continue
			}
			// Not released: this is fine for a disposable resource
			// (consumed), but if any supply of this type is
			// non-disposable it will be permanently held once
			// acquired by this activity with no path back to the
			// pool.
			if !onlyDisposableSupply(m, required) {
				warnings = append(warnings, Warning{
					ActivityID: id,
					Detail: fmt.Sprintf(
						"required resource type %q is neither released nor guaranteed disposable; "+
							"a non-disposable instance acquired here becomes permanently held", required),
				})
			}
		}
	}

	for i, e := range m.InitialFlowEntities {
		if _, ok := m.Activities[e.ActivityID]; !ok {
			errs = append(errs, &ModelStructureError{
				ActivityID: e.ActivityID,
				Detail:     fmt.Sprintf("initial flow entity %q (index %d) references unknown activity", e.ID, i),
			})
		}
	}

	return errs, warnings
}

// onlyDisposableSupply reports whether at least one initial resource
// of the given type exists and every one of them is disposable; with
// no initial supply of the type it returns false (generated resources are always
// disposable per spec.md §4.5.2, so they never widen this set toward
// "some non-disposable supply exists").
func onlyDisposableSupply(m *Model, t ResourceType) bool {
	seen := false
	for _, r := range m.InitialResources {
		if r.Type != t {
			continue
		}
		seen = true
		if !r.Disposable {
			return false
		}
	}
	return seen
}
