package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao"
	"github.com/viant/pact/service/history"
)

// Log implements an in-memory, thread-safe append-only history log. All
// reads work with copies so callers cannot mutate stored entries.
type Log struct {
	entries map[string][]*model.Entry
	mux     sync.RWMutex
}

var _ history.Log = (*Log)(nil)

func (l *Log) Append(_ context.Context, entry *model.Entry) error {
	if entry == nil {
		return dao.ErrNilEntity
	}
	if entry.NegotiationID == "" {
		return dao.ErrInvalidID
	}

	l.mux.Lock()
	defer l.mux.Unlock()

	clone := *entry
	l.entries[entry.NegotiationID] = append(l.entries[entry.NegotiationID], &clone)
	return nil
}

func (l *Log) Entries(_ context.Context, negotiationID string, recentFirst bool) ([]*model.Entry, error) {
	if negotiationID == "" {
		return nil, dao.ErrInvalidID
	}

	l.mux.RLock()
	stored := l.entries[negotiationID]
	ret := make([]*model.Entry, 0, len(stored))
	for _, entry := range stored {
		clone := *entry
		ret = append(ret, &clone)
	}
	l.mux.RUnlock()

	// sort ascending first, then reverse for recent-first, so that the two
	// orderings are exact mirrors even when timestamps collide
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Timestamp.Before(ret[j].Timestamp)
	})
	if recentFirst {
		for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
			ret[i], ret[j] = ret[j], ret[i]
		}
	}
	return ret, nil
}

func New() *Log {
	return &Log{entries: map[string][]*model.Entry{}}
}
