package engine

import (
	"context"
	"fmt"
	"iter"

	"github.com/viant/pact/extension"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/history"
	"github.com/viant/pact/service/roles"
)

// Negotiation loads a negotiation by id.
func (s *Service) Negotiation(ctx context.Context, id string) (*model.Negotiation, error) {
	return s.dao.Load(ctx, id)
}

// NegotiationFor returns the negotiation bound to a content reference or
// (nil, nil) when none exists.
func (s *Service) NegotiationFor(ctx context.Context, ref model.ContentRef) (*model.Negotiation, error) {
	return s.dao.LookupByContent(ctx, ref)
}

// Entries returns the full history of a negotiation, oldest first unless
// recentFirst is set.
func (s *Service) Entries(ctx context.Context, id string, recentFirst bool) ([]*model.Entry, error) {
	return s.log.Entries(ctx, id, recentFirst)
}

// History returns a lazy sequence over the negotiation's entries. Each
// range over the sequence re-reads the log, so a long-lived sequence
// observes entries appended since it was obtained.
func (s *Service) History(ctx context.Context, id string, recentFirst bool) iter.Seq2[*model.Entry, error] {
	return func(yield func(*model.Entry, error) bool) {
		entries, err := s.log.Entries(ctx, id, recentFirst)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, entry := range entries {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// LastProposalFrom returns the most recent entry recorded by a member of
// the given side, or (nil, nil) when that side has not acted yet.
func (s *Service) LastProposalFrom(ctx context.Context, id string, side model.Side) (*model.Entry, error) {
	current, err := s.dao.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load negotiation %v: %w", id, err)
	}
	entries, err := s.log.Entries(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return history.LastFrom(entries, current.PartyOf(side)), nil
}

// LastClientProposal returns the client's most recent entry, if any.
func (s *Service) LastClientProposal(ctx context.Context, id string) (*model.Entry, error) {
	return s.LastProposalFrom(ctx, id, model.SideClient)
}

// LastSellerProposal returns the seller's most recent entry, if any.
func (s *Service) LastSellerProposal(ctx context.Context, id string) (*model.Entry, error) {
	return s.LastProposalFrom(ctx, id, model.SideSeller)
}

// Initiator returns the user that created the negotiation.
func (s *Service) Initiator(ctx context.Context, id string) (string, error) {
	current, err := s.dao.Load(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load negotiation %v: %w", id, err)
	}
	return current.Starter, nil
}

// LastUpdaterAttribution identifies the actor of the most recent history
// entry together with the side that actor belongs to, or (nil, nil) when
// the negotiation has no history yet. Unlike the turn holder, the
// attribution keeps tracking terminal actions: after an accept the
// accepting counterpart is the last updater even though the turn never
// flipped.
func (s *Service) LastUpdaterAttribution(ctx context.Context, id string) (*model.Attribution, error) {
	current, err := s.dao.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load negotiation %v: %w", id, err)
	}
	entries, err := s.log.Entries(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	last := entries[0]
	side, _ := current.SideOf(last.Actor)
	return &model.Attribution{Actor: last.Actor, Side: side}, nil
}

// IsLastUpdater reports whether the user is the actor of the most recent
// history entry. Co-members of that actor's party do not qualify; use
// HasLastUpdaterPermissions for the party-level check.
func (s *Service) IsLastUpdater(ctx context.Context, id, user string) (bool, error) {
	attribution, err := s.LastUpdaterAttribution(ctx, id)
	if err != nil {
		return false, err
	}
	return attribution != nil && attribution.Actor == user, nil
}

// HasLastUpdaterPermissions reports whether the user's side holds the turn
// and so may invoke turn-holder transitions such as modify.
func (s *Service) HasLastUpdaterPermissions(ctx context.Context, id, user string) (bool, error) {
	current, err := s.dao.Load(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to load negotiation %v: %w", id, err)
	}
	return roles.HoldsLastUpdater(current, user), nil
}

// DecodeSnapshot materializes an entry's snapshot as a typed value when
// the negotiation's content kind is registered, or a generic map otherwise.
func (s *Service) DecodeSnapshot(ctx context.Context, entry *model.Entry) (interface{}, error) {
	if entry == nil {
		return nil, nil
	}
	current, err := s.dao.Load(ctx, entry.NegotiationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load negotiation %v: %w", entry.NegotiationID, err)
	}
	return s.types.Decode(current.Content.Kind, entry.Snapshot)
}

// Types exposes the snapshot type registry so callers can register
// content kinds.
func (s *Service) Types() *extension.Types {
	return s.types
}

// Resolver exposes the content resolver the engine freezes snapshots with.
func (s *Service) Resolver() extension.ContentResolver {
	return s.resolver
}
