/*
Package simrepo is a CRUD façade over pkg/simstore, adapted from the
teacher's pkg/manager. The teacher's Manager wraps its store with
raft consensus (Command/Apply through a WarrenFSM), a token manager,
a certificate authority, a DNS server, and an ingress proxy — all of
that exists to keep a cluster of manager nodes agreeing on shared
state. A model repository has no cluster to agree with: there is
exactly one process holding one simstore.Store, so Repository calls
straight through to it. Everything Manager needed consensus for
(raft/FSM, tokens, CA, DNS, ingress) has no analog here and is left
out entirely — see DESIGN.md.

Repository adds one thing the bare Store interface doesn't: it
validates a ModelSpec (by building it and running simmodel.Validate)
before persisting it, so a model saved through simrepo can never fail
structurally at run time.
*/
package simrepo
