/*
Package replication runs N independent replications of the same
Model concurrently and collects their results, per spec.md §5:
"Implementations targeting multi-core hardware may run independent
replications in parallel, but a single replication is strictly
sequential." Each replication gets its own engine.Engine — its own
queues, calendar, and clock — and its own DurationSampler instance, so
no mutable state crosses goroutines except the read-only Model.

Adapted from the teacher's pkg/scheduler for its logger/mutex shape;
the fan-out itself (one goroutine per replica joined by a
sync.WaitGroup) is the standard Go idiom for independent, boundedly
many CPU-bound tasks, which is a better fit here than the teacher's
own ticker-driven polling loop (there is no periodic cluster state to
reconcile — a replication runs once and returns).
*/
package replication
