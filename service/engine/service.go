package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/viant/pact/extension"
	"github.com/viant/pact/internal/clock"
	"github.com/viant/pact/internal/idgen"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao"
	"github.com/viant/pact/service/dao/negotiation"
	"github.com/viant/pact/service/event"
	"github.com/viant/pact/service/history"
	"github.com/viant/pact/service/roles"
	"github.com/viant/pact/tracing"
)

// Service owns the negotiation state machine. Every mutating action runs
// inside a per-negotiation critical section covering the guard check, the
// state write, the history append and the turn hand-off, so concurrent
// actions against the same negotiation serialize and exactly one wins.
type Service struct {
	definition *model.Definition
	defMux     sync.RWMutex
	dao        negotiation.Service
	log        history.Log
	events     *event.Service
	resolver   extension.ContentResolver
	types      *extension.Types

	mux   sync.Mutex
	locks map[string]*sync.Mutex
}

// Create binds a content object to a new negotiation. It returns (nil, nil)
// when the content already has one; the existing negotiation is left
// untouched. The content must satisfy the Negotiable contract and its
// creator must belong to one of the two parties.
func (s *Service) Create(ctx context.Context, content, client, seller interface{}, notes string) (*model.Negotiation, error) {
	ctx, span := tracing.StartSpan(ctx, "engine.create", "INTERNAL")
	ret, err := s.create(ctx, content, client, seller, notes)
	tracing.EndSpan(span, err)
	return ret, err
}

func (s *Service) create(ctx context.Context, content, client, seller interface{}, notes string) (*model.Negotiation, error) {
	negotiable, err := extension.AsNegotiable(content)
	if err != nil {
		return nil, err
	}
	ref := negotiable.ContentRef()
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: content reference was empty", extension.ErrNotNegotiable)
	}

	existing, err := s.dao.LookupByContent(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to look up negotiation for %v: %w", ref.Key(), err)
	}
	if existing != nil {
		// only one negotiation allowed per content object
		return nil, nil
	}

	clientParty, err := model.AsParty(client)
	if err != nil {
		return nil, fmt.Errorf("invalid client party: %w", err)
	}
	sellerParty, err := model.AsParty(seller)
	if err != nil {
		return nil, fmt.Errorf("invalid seller party: %w", err)
	}

	snapshot, err := extension.FreezeSnapshot(negotiable)
	if err != nil {
		return nil, err
	}

	now := clock.Now()
	ret := &model.Negotiation{
		ID:        idgen.New(),
		Content:   ref,
		Starter:   negotiable.Creator(),
		Client:    clientParty,
		Seller:    sellerParty,
		Notes:     notes,
		State:     s.Definition().Initial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := roles.Init(ret); err != nil {
		return nil, err
	}

	if err := s.dao.Save(ctx, ret); err != nil {
		if errors.Is(err, dao.ErrDuplicateContent) {
			// lost a creation race for the same content
			return nil, nil
		}
		return nil, fmt.Errorf("failed to persist negotiation: %w", err)
	}
	entry := &model.Entry{
		ID:            idgen.New(),
		NegotiationID: ret.ID,
		Actor:         ret.Starter,
		Timestamp:     now,
		Snapshot:      snapshot,
		Notes:         notes,
	}
	if err := s.log.Append(ctx, entry); err != nil {
		_ = s.dao.Delete(ctx, ret.ID)
		return nil, fmt.Errorf("failed to append history: %w", err)
	}

	if registry, ok := s.resolver.(*extension.Contents); ok {
		registry.Register(negotiable)
	}
	s.publish(ctx, event.NewEvent(event.TopicNegotiationCreated, ret, ret.Starter))
	return ret, nil
}

// Accept lets the counterpart accept the current proposal; the negotiation
// reaches its terminal accepted state.
func (s *Service) Accept(ctx context.Context, id, user, notes string) error {
	return s.execute(ctx, id, user, notes, model.TransitionAccept)
}

// Cancel lets the counterpart abandon the negotiation; terminal.
func (s *Service) Cancel(ctx context.Context, id, user, notes string) error {
	return s.execute(ctx, id, user, notes, model.TransitionCancel)
}

// Negotiate lets the counterpart make a counter-proposal; the turn flips to
// the acting side.
func (s *Service) Negotiate(ctx context.Context, id, user, notes string) error {
	return s.execute(ctx, id, user, notes, model.TransitionNegotiate)
}

// Modify lets the turn holder revise its own last proposal without
// yielding the turn.
func (s *Service) Modify(ctx context.Context, id, user, notes string) error {
	return s.execute(ctx, id, user, notes, model.TransitionModify)
}

func (s *Service) execute(ctx context.Context, id, user, notes, transitionName string) error {
	ctx, span := tracing.StartSpan(ctx, "engine."+transitionName, "INTERNAL")
	err := s.transition(ctx, id, user, notes, transitionName)
	tracing.EndSpan(span, err)
	return err
}

func (s *Service) transition(ctx context.Context, id, user, notes, transitionName string) error {
	definition := s.Definition()
	transition := definition.Lookup(transitionName)
	if transition == nil {
		return fmt.Errorf("%w: unknown transition %q", ErrInvalidTransition, transitionName)
	}

	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.dao.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load negotiation %v: %w", id, err)
	}
	if definition.IsTerminal(current.State) {
		return fmt.Errorf("%w: %s from terminal state %s", ErrInvalidTransition, transitionName, current.State)
	}
	if !roles.Holds(current, user, transition.Role) {
		return fmt.Errorf("%w: %s requires %s", ErrPermissionDenied, transitionName, transition.Role)
	}

	// freeze the content before touching any state so a resolver failure
	// leaves the negotiation untouched
	content, err := s.resolver.Resolve(ctx, current.Content)
	if err != nil {
		return fmt.Errorf("failed to resolve content %v: %w", current.Content.Key(), err)
	}
	snapshot, err := extension.FreezeSnapshot(content)
	if err != nil {
		return err
	}

	prior := current.Clone()
	now := clock.Now()
	current.Notes = notes
	current.State = transition.Destination
	current.UpdatedAt = now
	actingSide, _ := current.SideOf(user)
	if transition.FlipsTurn {
		roles.MakeLastUpdater(current, actingSide)
	} else if transition.Role == model.RoleLastUpdater {
		// re-affirm the holder; observable turn state is unchanged
		roles.MakeLastUpdater(current, actingSide)
	}

	if err := s.dao.Save(ctx, current); err != nil {
		return fmt.Errorf("failed to persist negotiation %v: %w", id, err)
	}
	entry := &model.Entry{
		ID:            idgen.New(),
		NegotiationID: current.ID,
		Actor:         user,
		Timestamp:     now,
		Snapshot:      snapshot,
		Notes:         notes,
	}
	if err := s.log.Append(ctx, entry); err != nil {
		// roll the record back so state and history stay consistent
		if restoreErr := s.dao.Save(ctx, prior); restoreErr != nil {
			log.Printf("failed to restore negotiation %v after history failure: %v", id, restoreErr)
		}
		return fmt.Errorf("failed to append history: %w", err)
	}

	s.publish(ctx, event.NewEvent(topicOf(transition), current, user))
	return nil
}

func topicOf(transition *model.Transition) string {
	switch transition.Name {
	case model.TransitionAccept:
		return event.TopicNegotiationAccepted
	case model.TransitionCancel:
		return event.TopicNegotiationCancelled
	case model.TransitionModify:
		return event.TopicProposalModified
	}
	return event.TopicProposalCountered
}

func (s *Service) publish(ctx context.Context, anEvent *event.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, anEvent); err != nil {
		log.Printf("failed to publish %s event for %s: %v", anEvent.Topic, anEvent.NegotiationID, err)
	}
}

func (s *Service) lockFor(id string) *sync.Mutex {
	s.mux.Lock()
	defer s.mux.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// Definition returns the workflow definition the engine validates
// transitions against.
func (s *Service) Definition() *model.Definition {
	s.defMux.RLock()
	defer s.defMux.RUnlock()
	return s.definition
}

// UpsertDefinition replaces the workflow definition. In-flight actions
// finish against the definition they started with.
func (s *Service) UpsertDefinition(definition *model.Definition) error {
	if err := definition.Validate(); err != nil {
		return err
	}
	s.defMux.Lock()
	defer s.defMux.Unlock()
	s.definition = definition
	return nil
}

// New creates an engine with the supplied options; collaborators default to
// in-memory implementations.
func New(options ...Option) (*Service, error) {
	ret := &Service{locks: map[string]*sync.Mutex{}}
	for _, option := range options {
		option(ret)
	}
	ret.ensureBaseSetup()
	if err := ret.definition.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
