/*
Package simstore provides BoltDB-backed persistence for named model
definitions and completed-run summaries, adapted from the teacher's
pkg/storage. The engine itself never touches this package (spec.md §6:
"Persisted state: none. The engine is in-memory.") — simstore is an
optional collaborator for a CLI or service process that wants to save
a model under a name and retrieve it later, and to keep a durable
record of what a run produced.

Every bucket the teacher's BoltStore carried for cluster/container
state (nodes, services, containers, secrets, volumes, networks, CA,
ingresses, TLS certificates) is gone; this package has exactly two:
models and runs.
*/
package simstore
