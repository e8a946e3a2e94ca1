/*
Package simmodel defines the static data model a simulation engine runs
against: flow entities, resource entities, activities, and the model
that ties them together.

# Overview

A Model is a directed graph of Activity nodes. Flow entities progress
through the graph one activity at a time; each activity may require,
release, and generate typed resource entities. None of the types here
know how to run a simulation — pkg/engine owns that — they only
describe the topology and hold runtime-mutable fields the engine
updates in place (arrival/departure times, resource availability).

# Validation

Model.Validate checks structural soundness only: every successor
activity id must resolve to a real activity, and every initial flow
entity's activity id must resolve to a real activity. It never
inspects durations, samplers, or resource availability — those are
runtime concerns.
*/
package simmodel
