/*
Package simserver is the HTTP surface for a long-lived simulation
service process: liveness, Prometheus metrics, and JSON endpoints for
running models and persisting model/run definitions.

	GET    /healthz      liveness
	GET    /metrics      promhttp
	POST   /runs         run a model (single replica or pkg/replication)
	GET    /runs/{id}    look up a persisted run summary
	POST   /models       save a model definition
	GET    /models       list saved model definitions
	GET    /models/{n}   fetch a model definition by name
	DELETE /models/{n}   delete a model definition

It is grounded on the teacher's pkg/api/health.go — same
http.NewServeMux + mux.HandleFunc + JSON-response-struct + Start(addr)
shape — with the raft-leader and storage-ping readiness checks dropped
(there is no cluster to be a leader of), leaving a single liveness
check, and with /ready folded away since there is nothing left for it
to report beyond what /healthz already says.

Per spec.md §6, this package is explicitly not something pkg/engine or
pkg/simmodel depend on or know about; it is a convenience collaborator
sitting on top of pkg/replication and pkg/simrepo. The Repository
passed to New is optional: a Server built with a nil Repository still
serves /healthz, /metrics, and computes /runs, but the persistence
routes (/models*, GET /runs/{id}) respond 503 rather than panicking.
*/
package simserver
