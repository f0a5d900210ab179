package pact

import (
	"context"
	"fmt"
	"iter"
	"path"
	"reflect"

	"github.com/viant/afs"
	"github.com/viant/pact/extension"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao/negotiation"
	nfs "github.com/viant/pact/service/dao/negotiation/fs"
	nmemory "github.com/viant/pact/service/dao/negotiation/memory"
	"github.com/viant/pact/service/engine"
	"github.com/viant/pact/service/event"
	"github.com/viant/pact/service/history"
	hfs "github.com/viant/pact/service/history/fs"
	hmemory "github.com/viant/pact/service/history/memory"
	qfs "github.com/viant/pact/service/messaging/fs"
	"github.com/viant/x"
)

// Service is the high-level façade. It wires the engine with its
// collaborators and exposes the negotiation operations end users interact
// with; the default wiring keeps everything in process memory.
type Service struct {
	config       *Config
	engine       *engine.Service
	definition   *model.Definition
	dao          negotiation.Service
	historyLog   history.Log
	eventService *event.Service
	resolver     extension.ContentResolver
	types        *extension.Types
	contents     *extension.Contents
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	var err error
	s.engine, err = engine.New(
		engine.WithDefinition(s.definition),
		engine.WithDAO(s.dao),
		engine.WithHistoryLog(s.historyLog),
		engine.WithEventService(s.eventService),
		engine.WithContentResolver(s.resolver),
		engine.WithTypes(s.types))
	return err
}

func (s *Service) ensureBaseSetup() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.definition == nil {
		if s.config.DefinitionURL != "" {
			definition, err := loadDefinition(context.Background(), s.config.DefinitionURL)
			if err != nil {
				return err
			}
			s.definition = definition
		} else {
			s.definition = model.DefaultDefinition()
		}
	}
	if s.dao == nil {
		switch s.config.Storage.Vendor {
		case VendorFS:
			dao, err := nfs.New(path.Join(s.config.Storage.BasePath, "negotiations"))
			if err != nil {
				return err
			}
			s.dao = dao
		default:
			s.dao = nmemory.New()
		}
	}
	if s.historyLog == nil {
		switch s.config.Storage.Vendor {
		case VendorFS:
			log, err := hfs.New(path.Join(s.config.Storage.BasePath, "history"))
			if err != nil {
				return err
			}
			s.historyLog = log
		default:
			s.historyLog = hmemory.New()
		}
	}
	if s.eventService == nil && !s.config.Events.Disabled {
		var err error
		switch s.config.Events.Vendor {
		case VendorFS:
			s.eventService, err = event.New("fs", event.WithFsQueueConfig(qfs.Config{
				BasePath:   path.Join(s.config.Events.BasePath, "events"),
				MaxRetries: 3,
			}))
		default:
			s.eventService, err = event.New("memory")
		}
		if err != nil {
			return err
		}
	}
	if s.resolver == nil {
		s.contents = extension.NewContents()
		s.resolver = s.contents
	}
	if s.types == nil {
		s.types = extension.NewTypes()
	}
	return nil
}

func loadDefinition(ctx context.Context, URL string) (*model.Definition, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load definition %v: %w", URL, err)
	}
	return model.DecodeDefinition(data)
}

// Negotiate starts a negotiation over the supplied content between a client
// and a seller party. The content creator starts as turn holder. It returns
// (nil, nil) when the content is already under negotiation.
func (s *Service) Negotiate(ctx context.Context, content, client, seller interface{}, notes string) (*model.Negotiation, error) {
	return s.engine.Create(ctx, content, client, seller, notes)
}

// Negotiation loads a negotiation by id.
func (s *Service) Negotiation(ctx context.Context, id string) (*model.Negotiation, error) {
	return s.engine.Negotiation(ctx, id)
}

// NegotiationFor returns the negotiation bound to a content reference, or
// (nil, nil) when none exists.
func (s *Service) NegotiationFor(ctx context.Context, ref model.ContentRef) (*model.Negotiation, error) {
	return s.engine.NegotiationFor(ctx, ref)
}

// Accept records the counterpart's acceptance of the current proposal.
func (s *Service) Accept(ctx context.Context, id, user, notes string) error {
	return s.engine.Accept(ctx, id, user, notes)
}

// Cancel abandons the negotiation on behalf of the counterpart.
func (s *Service) Cancel(ctx context.Context, id, user, notes string) error {
	return s.engine.Cancel(ctx, id, user, notes)
}

// CounterPropose records the counterpart's counter-proposal and hands it
// the turn.
func (s *Service) CounterPropose(ctx context.Context, id, user, notes string) error {
	return s.engine.Negotiate(ctx, id, user, notes)
}

// Modify lets the turn holder revise its own last proposal.
func (s *Service) Modify(ctx context.Context, id, user, notes string) error {
	return s.engine.Modify(ctx, id, user, notes)
}

// StatusFor projects the negotiation state into a label relative to the
// supplied user.
func (s *Service) StatusFor(ctx context.Context, id, user string) (string, error) {
	return s.engine.StatusFor(ctx, id, user)
}

// AllowedActions lists the transitions the user may currently invoke.
func (s *Service) AllowedActions(ctx context.Context, id, user string) ([]string, error) {
	return s.engine.AllowedActions(ctx, id, user)
}

// History returns a lazy sequence over the negotiation history; ranging
// over it re-reads the log each time.
func (s *Service) History(ctx context.Context, id string, recentFirst bool) iter.Seq2[*model.Entry, error] {
	return s.engine.History(ctx, id, recentFirst)
}

// Entries returns the negotiation history as a slice.
func (s *Service) Entries(ctx context.Context, id string, recentFirst bool) ([]*model.Entry, error) {
	return s.engine.Entries(ctx, id, recentFirst)
}

// LastClientProposal returns the client's most recent entry, if any.
func (s *Service) LastClientProposal(ctx context.Context, id string) (*model.Entry, error) {
	return s.engine.LastClientProposal(ctx, id)
}

// LastSellerProposal returns the seller's most recent entry, if any.
func (s *Service) LastSellerProposal(ctx context.Context, id string) (*model.Entry, error) {
	return s.engine.LastSellerProposal(ctx, id)
}

// Initiator returns the user that started the negotiation.
func (s *Service) Initiator(ctx context.Context, id string) (string, error) {
	return s.engine.Initiator(ctx, id)
}

// LastUpdater identifies the actor and side currently holding the turn.
func (s *Service) LastUpdater(ctx context.Context, id string) (*model.Attribution, error) {
	return s.engine.LastUpdaterAttribution(ctx, id)
}

// IsLastUpdater reports whether the user belongs to the turn-holding side.
func (s *Service) IsLastUpdater(ctx context.Context, id, user string) (bool, error) {
	return s.engine.IsLastUpdater(ctx, id, user)
}

// DecodeSnapshot materializes an entry snapshot; registered content kinds
// decode into their typed form.
func (s *Service) DecodeSnapshot(ctx context.Context, entry *model.Entry) (interface{}, error) {
	return s.engine.DecodeSnapshot(ctx, entry)
}

// Events exposes the event service so callers can install listeners or
// consume the queue directly; nil when events are disabled.
func (s *Service) Events() *event.Service {
	return s.eventService
}

// Engine exposes the underlying engine.
func (s *Service) Engine() *engine.Service {
	return s.engine
}

// UpsertDefinition replaces the workflow definition from a YAML document.
// In-flight actions finish against the definition they started with.
func (s *Service) UpsertDefinition(data []byte) error {
	definition, err := model.DecodeDefinition(data)
	if err != nil {
		return err
	}
	s.definition = definition
	return s.engine.UpsertDefinition(definition)
}

// RegisterContentType binds a content kind to its Go type so snapshots
// decode into typed values.
func (s *Service) RegisterContentType(kind string, rType reflect.Type) {
	s.types.Register(kind, rType)
}

// RegisterExtensionTypes registers pre-built type descriptors.
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.types.RegisterType(types[i])
	}
}

// RegisterContent makes a content object resolvable; only needed when
// content changed hands outside Negotiate, and only supported with the
// built-in in-memory resolver.
func (s *Service) RegisterContent(content extension.Negotiable) error {
	if s.contents == nil {
		return fmt.Errorf("content registration requires the in-memory resolver")
	}
	s.contents.Register(content)
	return nil
}

// New creates a Service with the supplied options; the default wiring is
// fully in-memory.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewFromConfig creates a Service from a configuration document.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	return New(append([]Option{WithConfig(config)}, options...)...)
}
