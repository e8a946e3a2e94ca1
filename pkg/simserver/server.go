package simserver

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/cuemby/sdesim/pkg/audit"
	"github.com/cuemby/sdesim/pkg/engine"
	"github.com/cuemby/sdesim/pkg/replication"
	"github.com/cuemby/sdesim/pkg/simlog"
	"github.com/cuemby/sdesim/pkg/simmetrics"
	"github.com/cuemby/sdesim/pkg/simmodel"
	"github.com/cuemby/sdesim/pkg/simrepo"
	"github.com/cuemby/sdesim/pkg/simstore"
	"github.com/google/uuid"
)

// Server is the HTTP surface for a simulation service process.
type Server struct {
	mux     *http.ServeMux
	metrics bool
	repo    *simrepo.Repository
}

// New builds a Server with every endpoint registered. enableMetrics
// gates whether /runs reports to pkg/simmetrics's default collectors,
// mirroring engine.WithMetrics's opt-in so tests never pollute the
// global registry. repo may be nil, in which case /models and the
// persisted-run-lookup route respond 503 rather than panicking — a
// Server is still useful as a pure compute endpoint without a
// configured store.
func New(enableMetrics bool, repo *simrepo.Repository) *Server {
	mux := http.NewServeMux()
	s := &Server{mux: mux, metrics: enableMetrics, repo: repo}

	mux.HandleFunc("/healthz", s.healthHandler)
	mux.Handle("/metrics", simmetrics.Handler())
	mux.HandleFunc("/runs", s.runsHandler)
	mux.HandleFunc("/runs/", s.runLookupHandler)
	mux.HandleFunc("/models", s.modelsHandler)
	mux.HandleFunc("/models/", s.modelHandler)

	return s
}

// Start blocks serving addr until the listener fails.
func (s *Server) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// Handler returns the underlying mux for embedding or testing.
func (s *Server) Handler() http.Handler { return s.mux }

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now()})
}

// RunRequest is the POST /runs body: a model definition plus the
// parameters engine.Run or replication.Run needs.
type RunRequest struct {
	Model        simmodel.ModelSpec `json:"model"`
	Duration     simmodel.SimTime   `json:"duration"`
	Replications int                `json:"replications,omitempty"`
}

// RunResponse summarizes one run (Replications <= 1) or the set of
// per-replica summaries (Replications > 1).
type RunResponse struct {
	RunID   string       `json:"run_id"`
	Results []RunSummary `json:"results"`
}

// RunSummary mirrors the fields of engine.RunResult a caller can
// usefully inspect over JSON, plus any audit findings.
type RunSummary struct {
	ReplicaIndex      int              `json:"replica_index"`
	TotalTime         simmodel.SimTime `json:"total_time"`
	PendingCount      int              `json:"pending_count"`
	CalendarRemaining int              `json:"calendar_remaining"`
	Findings          []string         `json:"findings,omitempty"`
	Error             string           `json:"error,omitempty"`
}

func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}
	if req.Duration <= 0 {
		req.Duration = simmodel.SimTime(math.Inf(1))
	}

	model, err := req.Model.ToModel()
	if err != nil {
		http.Error(w, fmt.Sprintf("building model: %v", err), http.StatusBadRequest)
		return
	}

	logger := simlog.WithComponent("simserver")
	runID := uuid.NewString()

	n := req.Replications
	if n < 1 {
		n = 1
	}

	var results []RunSummary
	if n == 1 {
		eng, err := engine.New(model, engine.WithID(runID), engine.WithMetrics(s.metrics))
		if err != nil {
			http.Error(w, fmt.Sprintf("building engine: %v", err), http.StatusBadRequest)
			return
		}
		result, err := eng.Run(req.Duration)
		results = []RunSummary{summarize(0, result, err)}
		if err == nil {
			s.recordRun(runID, req.Model.Name, result)
		}
	} else {
		factory := newSpecSamplerFactory(req.Model)
		var runs []replication.Result
		runs, err = replication.Run(r.Context(), model, n, factory, req.Duration, replication.WithMetrics(s.metrics))
		if err == nil {
			results = make([]RunSummary, len(runs))
			for i, res := range runs {
				results[i] = summarize(res.ReplicaIndex, res.Run, res.Err)
				if res.Err == nil {
					s.recordRun(fmt.Sprintf("%s-%d", runID, res.ReplicaIndex), req.Model.Name, res.Run)
				}
			}
		}
	}
	if err != nil {
		logger.Error().Err(err).Str("run_id", runID).Msg("run request failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, RunResponse{RunID: runID, Results: results})
}

// recordRun persists a completed replica's summary when a Repository
// is configured. Failure to persist never fails the request itself —
// the run already happened and its result is already in the response;
// persistence is a best-effort durability add-on, not part of the
// run's own correctness.
func (s *Server) recordRun(runID, modelName string, result *engine.RunResult) {
	if s.repo == nil {
		return
	}
	summary := &simstore.RunSummary{
		RunID:             runID,
		ModelName:         modelName,
		StartedAt:         time.Now(),
		TotalTime:         float64(result.TotalTime),
		PendingCount:      len(result.Pending),
		CalendarRemaining: result.CalendarRemaining,
		ActivityCounts:    make(map[string]int, len(result.Stats.Activities())),
	}
	for id, row := range result.Stats.Activities() {
		summary.ActivityCounts[id] = row.CompletionCount
	}
	if err := s.repo.RecordRun(summary); err != nil {
		simlog.WithComponent("simserver").Error().Err(err).Str("run_id", runID).Msg("failed to persist run summary")
	}
}

func summarize(idx int, result *engine.RunResult, err error) RunSummary {
	if err != nil {
		return RunSummary{ReplicaIndex: idx, Error: err.Error()}
	}
	summary := RunSummary{
		ReplicaIndex:      idx,
		TotalTime:         result.TotalTime,
		PendingCount:      len(result.Pending),
		CalendarRemaining: result.CalendarRemaining,
	}
	for _, f := range audit.Check(result) {
		summary.Findings = append(summary.Findings, f.String())
	}
	return summary
}

// runLookupHandler implements GET /runs/{id}, reading a previously
// persisted RunSummary back out of the configured Repository.
func (s *Server) runLookupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.repo == nil {
		http.Error(w, "run persistence not configured", http.StatusServiceUnavailable)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" {
		http.Error(w, "missing run id", http.StatusBadRequest)
		return
	}

	summary, err := s.repo.GetRun(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// modelsHandler implements POST /models (save) and GET /models (list)
// against the configured Repository.
func (s *Server) modelsHandler(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		http.Error(w, "model persistence not configured", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var spec simmodel.ModelSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
			return
		}
		if err := s.repo.SaveModel(&spec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, spec)
	case http.MethodGet:
		specs, err := s.repo.ListModels()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, specs)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// modelHandler implements GET /models/{name} and DELETE /models/{name}
// against the configured Repository.
func (s *Server) modelHandler(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		http.Error(w, "model persistence not configured", http.StatusServiceUnavailable)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/models/")
	if name == "" {
		http.Error(w, "missing model name", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		spec, err := s.repo.GetModel(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, spec)
	case http.MethodDelete:
		if err := s.repo.DeleteModel(name); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// newSpecSamplerFactory builds a replication.SamplerFactory that
// re-derives each activity's sampler from its original DurationSpec,
// offsetting the declared seed by the replica index — the model
// replication.Run is handed has already lost its Spec form, so the
// factory closes over the request's spec instead of the built model.
func newSpecSamplerFactory(spec simmodel.ModelSpec) replication.SamplerFactory {
	specs := make(map[string]simmodel.DurationSpec, len(spec.Activities))
	for _, a := range spec.Activities {
		specs[a.ID] = a.Duration
	}
	return func(replicaIndex int, activity *simmodel.Activity) (simmodel.DurationSampler, error) {
		d, ok := specs[activity.ID]
		if !ok {
			return nil, fmt.Errorf("simserver: no duration spec for activity %q", activity.ID)
		}
		d.Seed += int64(replicaIndex)
		return d.Build()
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
