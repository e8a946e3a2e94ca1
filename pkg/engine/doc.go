/*
Package engine implements the Engine: the main loop that drives
simulated time forward, applies the begin-service / end-service
handlers, and keeps the flow queue, resource queue, event calendar,
and statistics collector in sync with each other.

# Lifecycle

	┌─────────────────────────────────────────────────────────┐
	│ 1. Initialize                                            │
	│    copy initial flow entities / resources into queues    │
	│    seed empty per-activity / per-resource statistics     │
	└──────────────────────┬────────────────────────────────────┘
	                       ▼
	┌─────────────────────────────────────────────────────────┐
	│ 2. Drain Eligible Phase                                   │
	│    repeatedly begin_service the next unprocessed entity   │
	│    stop at the first failed acquisition (spec.md §4.5)    │
	└──────────────────────┬────────────────────────────────────┘
	                       ▼
	┌─────────────────────────────────────────────────────────┐
	│ 3. Main Loop (while calendar non-empty && now < duration) │
	│    pop next event → advance clock → log it → dispatch     │
	│    re-run the Drain Eligible Phase                         │
	└──────────────────────┬────────────────────────────────────┘
	                       ▼
	┌─────────────────────────────────────────────────────────┐
	│ 4. Finalize — record total simulated time                 │
	└─────────────────────────────────────────────────────────┘

A single Engine is strictly single-threaded and synchronous: Run never
spawns a goroutine and never blocks on external I/O. Running many
replications concurrently is pkg/replication's job, one full Engine per
goroutine.
*/
package engine
