package model

import (
	"encoding/json"
	"time"
)

// Entry is a single append-only history record: who acted, when, the frozen
// content snapshot at that moment and the free-text notes attached to the
// action. Entries are never mutated or deleted once written.
type Entry struct {
	ID            string          `json:"id"`
	NegotiationID string          `json:"negotiationId"`
	Actor         string          `json:"actor"`
	Timestamp     time.Time       `json:"timestamp"`
	Snapshot      json.RawMessage `json:"snapshot,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// SnapshotMap decodes the snapshot into a generic map. It returns nil when
// the entry carries no snapshot.
func (e *Entry) SnapshotMap() (map[string]interface{}, error) {
	if len(e.Snapshot) == 0 {
		return nil, nil
	}
	var ret map[string]interface{}
	if err := json.Unmarshal(e.Snapshot, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Attribution pairs the actor of a history entry with the side the actor
// belongs to; used by last-updater and initiator queries.
type Attribution struct {
	Actor string `json:"actor"`
	Side  Side   `json:"side"`
}
