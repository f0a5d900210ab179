package engine

import (
	"context"
	"fmt"

	"github.com/viant/pact/model"
	"github.com/viant/pact/service/roles"
)

// Human readable status labels derived from the state machine and the
// caller's current role.
const (
	StatusAccepted  = "ACCEPTED"
	StatusCancelled = "CANCELLED"
	// StatusWaiting is shown to the turn holder: it already moved and
	// waits for the other side.
	StatusWaiting = "WAITING FOR COUNTERPART"
	// StatusPending is shown to the counterpart: the ball is in its court.
	StatusPending = "PENDING ACTION"
)

// StatusFor projects the negotiation state into a label relative to the
// supplied user.
func (s *Service) StatusFor(ctx context.Context, id, user string) (string, error) {
	current, err := s.dao.Load(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load negotiation %v: %w", id, err)
	}
	switch current.State {
	case model.StateAccepted:
		return StatusAccepted, nil
	case model.StateCancelled:
		return StatusCancelled, nil
	}
	if roles.HoldsLastUpdater(current, user) {
		return StatusWaiting, nil
	}
	return StatusPending, nil
}

// AllowedActions lists the transition names the user may invoke on the
// negotiation in its current state. Terminal states allow nothing.
func (s *Service) AllowedActions(ctx context.Context, id, user string) ([]string, error) {
	current, err := s.dao.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load negotiation %v: %w", id, err)
	}
	definition := s.Definition()
	if definition.IsTerminal(current.State) {
		return []string{}, nil
	}
	var ret []string
	for i := range definition.Transitions {
		transition := &definition.Transitions[i]
		if roles.Holds(current, user, transition.Role) {
			ret = append(ret, transition.Name)
		}
	}
	return ret, nil
}
