// Package pact provides a two-party negotiation engine.
//
// A negotiation binds a content object (an offer, a quote, a contract
// draft) to exactly two parties, a client and a seller, and moves it
// through a turn-based protocol: the side that last touched the content
// holds the turn and may revise its proposal, while the other side may
// accept it, counter it or cancel the negotiation. Every action freezes a
// snapshot of the content into an append-only history, so the full back
// and forth can be reconstructed later.
//
// The engine comes with pluggable service layers:
//
//   - engine  – guarded state transitions and atomic turn hand-off
//   - dao     – negotiation persistence (memory, filesystem)
//   - history – append-only snapshot log (memory, filesystem)
//   - event   – lifecycle event publishing over a message queue
//
// Pact is designed to be embedded in host applications. End users
// typically interact via the high-level Service façade exposed by the
// root package:
//
//	srv, _ := pact.New()
//	n, _ := srv.Negotiate(ctx, offer, "alice", "bob", "I offer 1000")
//	_ = srv.CounterPropose(ctx, n.ID, "bob", "meet me at 950")
//	_ = srv.Accept(ctx, n.ID, "alice", "deal")
//
// For more details see the README and individual sub-packages.
package pact
