// Package history defines the append-only proposal log: every engine action
// appends exactly one immutable Entry, and queries reconstruct per-party
// "last proposal" views from the ordered entries.
package history

import (
	"context"

	"github.com/viant/pact/model"
)

// Log is the append-only store contract for history entries. Entries are
// never mutated or deleted once appended.
type Log interface {
	// Append adds an immutable entry to the log.
	Append(ctx context.Context, entry *model.Entry) error

	// Entries returns the entries of a negotiation ordered by timestamp,
	// descending when recentFirst is true. Each call produces a fresh,
	// independently ordered result.
	Entries(ctx context.Context, negotiationID string, recentFirst bool) ([]*model.Entry, error)
}

// LastFrom returns the most recent entry whose actor belongs to the party,
// or nil when the party has not acted yet.
func LastFrom(entries []*model.Entry, party model.Party) *model.Entry {
	for _, entry := range entries {
		if party.Contains(entry.Actor) {
			return entry
		}
	}
	return nil
}
