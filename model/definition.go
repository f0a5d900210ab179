package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Turn roles recognised by transition guards.
const (
	RoleLastUpdater = "LAST_UPDATER"
	RoleCounterpart = "COUNTERPART"
)

// Canonical transition names.
const (
	TransitionAccept    = "accept"
	TransitionCancel    = "cancel"
	TransitionNegotiate = "negotiate"
	TransitionModify    = "modify"
)

// Definition is the declarative negotiation workflow: the state set, the
// initial state and the guarded transitions between states. It can be
// loaded from a YAML document or built via DefaultDefinition.
type Definition struct {
	// Name is the unique identifier for the definition
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Initial names the state assigned at creation
	Initial string `json:"initial" yaml:"initial"`

	// States lists every reachable state
	States []State `json:"states" yaml:"states"`

	// Transitions define the guarded edges of the state machine
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// State describes a single workflow state.
type State struct {
	Name string `json:"name" yaml:"name"`

	// Terminal states admit no outgoing transitions
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

// Transition describes a guarded edge: it may only be taken from a
// non-terminal state by a user whose side currently holds Role.
type Transition struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Destination names the state the transition leads to
	Destination string `json:"destination" yaml:"destination"`

	// Role is the turn role required to take the transition
	Role string `json:"role" yaml:"role"`

	// FlipsTurn hands the last-updater role to the acting side
	FlipsTurn bool `json:"flipsTurn,omitempty" yaml:"flipsTurn,omitempty"`
}

// DefaultDefinition returns the built-in two-party negotiation workflow:
// the counterpart may accept, cancel or counter-propose; the last updater
// may revise its own proposal without yielding the turn.
func DefaultDefinition() *Definition {
	return &Definition{
		Name:    "negotiation",
		Initial: StateNegotiating,
		States: []State{
			{Name: StateNegotiating},
			{Name: StateAccepted, Terminal: true},
			{Name: StateCancelled, Terminal: true},
		},
		Transitions: []Transition{
			{
				Name:        TransitionAccept,
				Destination: StateAccepted,
				Role:        RoleCounterpart,
				Description: "Accept the current proposal.",
			},
			{
				Name:        TransitionCancel,
				Destination: StateCancelled,
				Role:        RoleCounterpart,
				Description: "Cancel the negotiation.",
			},
			{
				Name:        TransitionNegotiate,
				Destination: StateNegotiating,
				Role:        RoleCounterpart,
				FlipsTurn:   true,
				Description: "Make a counter-proposal.",
			},
			{
				Name:        TransitionModify,
				Destination: StateNegotiating,
				Role:        RoleLastUpdater,
				Description: "Make a new modified proposal.",
			},
		},
	}
}

// DecodeDefinition parses a YAML document into a Definition and validates
// the result.
func DecodeDefinition(data []byte) (*Definition, error) {
	ret := &Definition{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Lookup returns the named transition or nil.
func (d *Definition) Lookup(name string) *Transition {
	for i := range d.Transitions {
		if d.Transitions[i].Name == name {
			return &d.Transitions[i]
		}
	}
	return nil
}

// StateOf returns the named state or nil.
func (d *Definition) StateOf(name string) *State {
	for i := range d.States {
		if d.States[i].Name == name {
			return &d.States[i]
		}
	}
	return nil
}

// IsTerminal reports whether the named state admits no transitions.
func (d *Definition) IsTerminal(name string) bool {
	state := d.StateOf(name)
	return state != nil && state.Terminal
}

// Validate verifies static structural properties of the definition.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("definition name was empty")
	}
	if d.StateOf(d.Initial) == nil {
		return fmt.Errorf("initial state %q is not defined", d.Initial)
	}
	if d.IsTerminal(d.Initial) {
		return fmt.Errorf("initial state %q cannot be terminal", d.Initial)
	}
	if len(d.Transitions) == 0 {
		return fmt.Errorf("definition %q has no transitions", d.Name)
	}
	seen := map[string]bool{}
	for _, transition := range d.Transitions {
		if transition.Name == "" {
			return fmt.Errorf("transition name was empty")
		}
		if seen[transition.Name] {
			return fmt.Errorf("duplicate transition %q", transition.Name)
		}
		seen[transition.Name] = true
		if d.StateOf(transition.Destination) == nil {
			return fmt.Errorf("transition %q destination %q is not defined", transition.Name, transition.Destination)
		}
		switch transition.Role {
		case RoleLastUpdater, RoleCounterpart:
		default:
			return fmt.Errorf("transition %q has unknown role %q", transition.Name, transition.Role)
		}
	}
	return nil
}
