package engine

import (
	"github.com/viant/pact/extension"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao/negotiation"
	nmemory "github.com/viant/pact/service/dao/negotiation/memory"
	"github.com/viant/pact/service/event"
	"github.com/viant/pact/service/history"
	hmemory "github.com/viant/pact/service/history/memory"
)

// Option configures an engine Service.
type Option func(*Service)

// WithDefinition replaces the default workflow definition.
func WithDefinition(definition *model.Definition) Option {
	return func(s *Service) {
		s.definition = definition
	}
}

// WithDAO sets the negotiation persistence service.
func WithDAO(dao negotiation.Service) Option {
	return func(s *Service) {
		s.dao = dao
	}
}

// WithHistoryLog sets the append-only history log.
func WithHistoryLog(log history.Log) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithEventService sets the event publisher; nil disables publishing.
func WithEventService(events *event.Service) Option {
	return func(s *Service) {
		s.events = events
	}
}

// WithContentResolver sets the resolver used to freeze content snapshots
// on every transition.
func WithContentResolver(resolver extension.ContentResolver) Option {
	return func(s *Service) {
		s.resolver = resolver
	}
}

// WithTypes sets the registry used to decode typed snapshots.
func WithTypes(types *extension.Types) Option {
	return func(s *Service) {
		s.types = types
	}
}

func (s *Service) ensureBaseSetup() {
	if s.definition == nil {
		s.definition = model.DefaultDefinition()
	}
	if s.dao == nil {
		s.dao = nmemory.New()
	}
	if s.log == nil {
		s.log = hmemory.New()
	}
	if s.resolver == nil {
		s.resolver = extension.NewContents()
	}
	if s.types == nil {
		s.types = extension.NewTypes()
	}
}
