package extension

import (
	"errors"

	"github.com/viant/pact/model"
)

// ErrNotNegotiable is returned when a content object does not satisfy the
// Negotiable contract.
var ErrNotNegotiable = errors.New("extension: content is not negotiable")

// Negotiable is the contract a content object must satisfy to take part in
// a negotiation: it identifies itself, names its creator and can freeze its
// negotiated value into a serializable snapshot.
type Negotiable interface {
	// ContentRef identifies the content object; at most one negotiation
	// may be bound to a reference.
	ContentRef() model.ContentRef

	// Creator returns the user identity that created the content.
	Creator() string

	// Freeze captures the current negotiated value as a serializable
	// snapshot for the history log.
	Freeze() (interface{}, error)
}

// AsNegotiable asserts the content to the Negotiable contract.
func AsNegotiable(content interface{}) (Negotiable, error) {
	if content == nil {
		return nil, ErrNotNegotiable
	}
	ret, ok := content.(Negotiable)
	if !ok {
		return nil, ErrNotNegotiable
	}
	return ret, nil
}
