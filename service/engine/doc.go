// Package engine implements the negotiation state machine: guarded
// transitions between the two parties, atomic turn hand-off, append-only
// history capture and status projection. All mutations of a negotiation
// serialize on a per-negotiation lock so concurrent actions cannot
// interleave between guard evaluation and commit.
package engine
