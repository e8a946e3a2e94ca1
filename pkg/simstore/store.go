package simstore

import (
	"time"

	"github.com/cuemby/sdesim/pkg/simmodel"
)

// RunSummary is the durable record of one completed replication: just
// enough to answer "what happened" without keeping the full event log
// around (that stays in the in-memory engine.RunResult for the
// process that produced it — spec.md §6 keeps persisted state out of
// the core entirely).
type RunSummary struct {
	RunID             string    `json:"run_id"`
	ModelName         string    `json:"model_name"`
	StartedAt         time.Time `json:"started_at"`
	TotalTime         float64   `json:"total_time"`
	PendingCount      int       `json:"pending_count"`
	CalendarRemaining int       `json:"calendar_remaining"`
	ActivityCounts    map[string]int `json:"activity_counts"`
}

// Store defines the persistence surface simstore offers: named model
// definitions, and a log of run summaries per model.
type Store interface {
	// Models
	SaveModel(spec *simmodel.ModelSpec) error
	GetModel(name string) (*simmodel.ModelSpec, error)
	ListModels() ([]*simmodel.ModelSpec, error)
	DeleteModel(name string) error

	// Runs
	SaveRun(summary *RunSummary) error
	GetRun(runID string) (*RunSummary, error)
	ListRunsByModel(modelName string) ([]*RunSummary, error)

	// Utility
	Close() error
}
