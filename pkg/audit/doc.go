/*
Package audit independently re-derives P3 from pkg/engine's own
property tests (no two busy intervals for one resource overlap),
reports how many non-disposable resources of each type remain at the
end of a run (without comparing them against the initial pool, so P4
is not checked here), and reports ResourceStarvation for any entity
left pending, adapted from the teacher's pkg/reconciler.

The teacher's Reconciler ticks forever, reading and repairing live
cluster state through a Manager. An engine.Engine is explicitly not
safe for concurrent access while a replication is running (see
pkg/engine's doc comment), so Watcher never polls an Engine directly;
instead it subscribes to a simevents.Broker the engine was constructed
with and periodically logs a progress summary from the notifications
it has already received — the same ticker-driven shape as the
teacher's reconcile loop, but observing rather than repairing, and
fed by messages instead of direct state reads.
*/
package audit
