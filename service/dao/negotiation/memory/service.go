package memory

import (
	"context"
	"sync"

	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao"
	"github.com/viant/pact/service/dao/criteria"
	"github.com/viant/pact/service/dao/negotiation"
)

// Service implements an in-memory, thread-safe negotiation store. A
// secondary index keyed by content reference enforces the at-most-one
// negotiation per content object invariant.
type Service struct {
	negotiations map[string]*model.Negotiation
	byContent    map[string]string
	mux          sync.RWMutex
}

var _ negotiation.Service = (*Service)(nil)

func (s *Service) Save(_ context.Context, n *model.Negotiation) error {
	if n == nil {
		return dao.ErrNilEntity
	}
	if n.ID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if !n.Content.IsZero() {
		if boundID, ok := s.byContent[n.Content.Key()]; ok && boundID != n.ID {
			return dao.ErrDuplicateContent
		}
		s.byContent[n.Content.Key()] = n.ID
	}
	s.negotiations[n.ID] = n.Clone()
	return nil
}

func (s *Service) Load(_ context.Context, id string) (*model.Negotiation, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	n, ok := s.negotiations[id]
	s.mux.RUnlock()

	if !ok {
		return nil, dao.ErrNotFound
	}
	return n.Clone(), nil
}

func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	n, ok := s.negotiations[id]
	if !ok {
		return dao.ErrNotFound
	}
	delete(s.negotiations, id)
	delete(s.byContent, n.Content.Key())
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*model.Negotiation, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*model.Negotiation, 0, len(s.negotiations))
	for _, n := range s.negotiations {
		if !criteria.Match("State", n.State, parameters) {
			continue
		}
		if !criteria.Match("ContentKind", n.Content.Kind, parameters) {
			continue
		}
		out = append(out, n.Clone())
	}
	return out, nil
}

func (s *Service) LookupByContent(_ context.Context, ref model.ContentRef) (*model.Negotiation, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	id, ok := s.byContent[ref.Key()]
	if !ok {
		return nil, nil
	}
	n, ok := s.negotiations[id]
	if !ok {
		return nil, nil
	}
	return n.Clone(), nil
}

func New() *Service {
	return &Service{
		negotiations: map[string]*model.Negotiation{},
		byContent:    map[string]string{},
	}
}
