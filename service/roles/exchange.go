// Package roles owns the turn state of a negotiation: while the
// negotiation is open, exactly one side holds the last-updater role and the
// other holds the counterpart role. The assignment lives as a first-class
// field on the negotiation, so granting one role implicitly hands the other
// to the opposite side in the same step.
//
// Authorization checks consult this package only, never the history log,
// so they stay correct even when history reconstruction is delayed.
package roles

import (
	"fmt"

	"github.com/viant/pact/model"
)

// Init assigns the initial turn state: the side the starter belongs to
// becomes the last updater, the other side the counterpart.
func Init(n *model.Negotiation) error {
	side, ok := n.SideOf(n.Starter)
	if !ok {
		return fmt.Errorf("starter %q belongs to neither party", n.Starter)
	}
	MakeLastUpdater(n, side)
	return nil
}

// MakeLastUpdater grants the last-updater role to the given side; the other
// side becomes the counterpart.
func MakeLastUpdater(n *model.Negotiation, side model.Side) {
	n.TurnHolder = side
}

// MakeCounterpart grants the counterpart role to the given side; the other
// side becomes the last updater.
func MakeCounterpart(n *model.Negotiation, side model.Side) {
	if side == model.SideClient {
		n.TurnHolder = model.SideSeller
		return
	}
	n.TurnHolder = model.SideClient
}

// HoldsLastUpdater reports whether the user's side currently holds the
// last-updater role.
func HoldsLastUpdater(n *model.Negotiation, user string) bool {
	side, ok := n.SideOf(user)
	return ok && side == n.TurnHolder
}

// HoldsCounterpart reports whether the user's side currently holds the
// counterpart role.
func HoldsCounterpart(n *model.Negotiation, user string) bool {
	side, ok := n.SideOf(user)
	return ok && side == n.Counterpart()
}

// Holds reports whether the user's side currently holds the named role.
func Holds(n *model.Negotiation, user, role string) bool {
	switch role {
	case model.RoleLastUpdater:
		return HoldsLastUpdater(n, user)
	case model.RoleCounterpart:
		return HoldsCounterpart(n, user)
	}
	return false
}
