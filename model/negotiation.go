package model

import (
	"time"
)

// Negotiation states
const (
	StateNegotiating = "Negotiating"
	StateAccepted    = "Accepted"
	StateCancelled   = "Cancelled"
)

// Side identifies one of the two negotiating sides.
type Side string

const (
	SideClient Side = "client"
	SideSeller Side = "seller"
)

// ContentRef identifies the content object bound to a negotiation. At most
// one negotiation exists per (Kind, ID) pair.
type ContentRef struct {
	Kind string `json:"kind" yaml:"kind"`
	ID   string `json:"id" yaml:"id"`
}

// IsZero reports whether the reference is empty.
func (r ContentRef) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

// Key returns a stable string form usable as an index key.
func (r ContentRef) Key() string {
	return r.Kind + "/" + r.ID
}

// Negotiation represents a two-sided negotiation over a content object.
// TurnHolder carries the last-updater role; the opposite side is derived
// via Counterpart so that exactly one of each role exists at any time.
type Negotiation struct {
	ID         string     `json:"id"`
	Content    ContentRef `json:"content"`
	Starter    string     `json:"starter"`
	Client     Party      `json:"client"`
	Seller     Party      `json:"seller"`
	Notes      string     `json:"notes,omitempty"`
	State      string     `json:"state"`
	TurnHolder Side       `json:"turnHolder,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Counterpart returns the side opposite to the current turn holder. The
// result is meaningless once the negotiation reached a terminal state.
func (n *Negotiation) Counterpart() Side {
	if n.TurnHolder == SideClient {
		return SideSeller
	}
	return SideClient
}

// PartyOf returns the party bound to the given side.
func (n *Negotiation) PartyOf(side Side) Party {
	if side == SideClient {
		return n.Client
	}
	return n.Seller
}

// SideOf resolves which side the user belongs to. The second result is
// false when the user is a member of neither party.
func (n *Negotiation) SideOf(user string) (Side, bool) {
	if n.Client.Contains(user) {
		return SideClient, true
	}
	if n.Seller.Contains(user) {
		return SideSeller, true
	}
	return "", false
}

// IsClient reports whether user belongs to the client party.
func (n *Negotiation) IsClient(user string) bool {
	return n.Client.Contains(user)
}

// IsSeller reports whether user belongs to the seller party.
func (n *Negotiation) IsSeller(user string) bool {
	return n.Seller.Contains(user)
}

// IsNegotiating reports whether the negotiation is still open.
func (n *Negotiation) IsNegotiating() bool {
	return n.State == StateNegotiating
}

// IsAccepted reports whether the negotiation ended in acceptance.
func (n *Negotiation) IsAccepted() bool {
	return n.State == StateAccepted
}

// IsCancelled reports whether the negotiation was cancelled.
func (n *Negotiation) IsCancelled() bool {
	return n.State == StateCancelled
}

// IsTerminal reports whether no further transition may originate from the
// current state.
func (n *Negotiation) IsTerminal() bool {
	return n.State == StateAccepted || n.State == StateCancelled
}

// Clone returns a deep copy; the engine mutates copies and persists them so
// that a failed commit never leaves a half-updated record visible.
func (n *Negotiation) Clone() *Negotiation {
	if n == nil {
		return nil
	}
	ret := *n
	ret.Client = n.Client.Clone()
	ret.Seller = n.Seller.Clone()
	return &ret
}
