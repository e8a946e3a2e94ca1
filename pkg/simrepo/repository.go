package simrepo

import (
	"fmt"

	"github.com/cuemby/sdesim/pkg/simmodel"
	"github.com/cuemby/sdesim/pkg/simstore"
)

// Repository is a validating façade over a simstore.Store.
type Repository struct {
	store simstore.Store
}

// New wraps an already-open simstore.Store.
func New(store simstore.Store) *Repository {
	return &Repository{store: store}
}

// SaveModel validates spec (structural soundness, via ToModel +
// simmodel.Validate) and persists it. It refuses to save a model that
// would fail at Engine construction time.
func (r *Repository) SaveModel(spec *simmodel.ModelSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("simrepo: model must have a name")
	}

	m, err := spec.ToModel()
	if err != nil {
		return fmt.Errorf("simrepo: model %q: %w", spec.Name, err)
	}
	if errs, _ := m.Validate(); len(errs) > 0 {
		return fmt.Errorf("simrepo: model %q is structurally invalid: %w", spec.Name, errs[0])
	}

	return r.store.SaveModel(spec)
}

// GetModel retrieves a model definition by name (read from the
// store).
func (r *Repository) GetModel(name string) (*simmodel.ModelSpec, error) {
	return r.store.GetModel(name)
}

// ListModels returns every stored model definition.
func (r *Repository) ListModels() ([]*simmodel.ModelSpec, error) {
	return r.store.ListModels()
}

// DeleteModel removes a stored model definition.
func (r *Repository) DeleteModel(name string) error {
	return r.store.DeleteModel(name)
}

// RecordRun persists a run summary.
func (r *Repository) RecordRun(summary *simstore.RunSummary) error {
	return r.store.SaveRun(summary)
}

// GetRun retrieves a run summary by id.
func (r *Repository) GetRun(runID string) (*simstore.RunSummary, error) {
	return r.store.GetRun(runID)
}

// ListRuns returns every run summary recorded against a model name.
func (r *Repository) ListRuns(modelName string) ([]*simstore.RunSummary, error) {
	return r.store.ListRunsByModel(modelName)
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.store.Close()
}
