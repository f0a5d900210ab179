package extension

import (
	"context"
	"sync"

	"github.com/viant/pact/model"
)

// ContentResolver resolves a content reference back to the live content
// object so its current value can be frozen at action time.
type ContentResolver interface {
	Resolve(ctx context.Context, ref model.ContentRef) (Negotiable, error)
}

// Contents is an in-memory ContentResolver: content objects are registered
// when a negotiation is created and resolved on every subsequent action.
// Applications backed by a database supply their own resolver instead.
type Contents struct {
	contents map[string]Negotiable
	mux      sync.RWMutex
}

// Register binds a content object to its reference.
func (c *Contents) Register(content Negotiable) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.contents[content.ContentRef().Key()] = content
}

// Resolve returns the registered content object, or ErrNotNegotiable when
// the reference is unknown.
func (c *Contents) Resolve(_ context.Context, ref model.ContentRef) (Negotiable, error) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	content, ok := c.contents[ref.Key()]
	if !ok {
		return nil, ErrNotNegotiable
	}
	return content, nil
}

// NewContents creates an empty in-memory content resolver.
func NewContents() *Contents {
	return &Contents{contents: map[string]Negotiable{}}
}
