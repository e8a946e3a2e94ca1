/*
Package simevents broadcasts a copy of every event the engine
processes to interested observers, adapted from the teacher
orchestrator's pkg/events cluster-event broker. Subscribing is purely
observational: a Broker attached to an Engine never changes simulated
semantics, and a slow or absent subscriber never blocks the engine
(Publish drops on a full subscriber buffer rather than waiting).
*/
package simevents
