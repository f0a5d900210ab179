package pact

import (
	"github.com/viant/pact/extension"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao/negotiation"
	"github.com/viant/pact/service/event"
	"github.com/viant/pact/service/history"
	"github.com/viant/pact/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customizes the Service wiring.
type Option func(s *Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithDefinition replaces the built-in workflow definition.
func WithDefinition(definition *model.Definition) Option {
	return func(s *Service) {
		s.definition = definition
	}
}

// WithNegotiationDAO sets the negotiation persistence service.
func WithNegotiationDAO(dao negotiation.Service) Option {
	return func(s *Service) {
		s.dao = dao
	}
}

// WithHistoryLog sets the append-only history log.
func WithHistoryLog(log history.Log) Option {
	return func(s *Service) {
		s.historyLog = log
	}
}

// WithEventService sets the event service used for lifecycle events.
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithContentResolver replaces the in-memory content resolver, typically
// with one backed by the application's own storage.
func WithContentResolver(resolver extension.ContentResolver) Option {
	return func(s *Service) {
		s.resolver = resolver
	}
}

// WithTypes sets the snapshot type registry.
func WithTypes(types *extension.Types) Option {
	return func(s *Service) {
		s.types = types
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If
// outputFile is empty the stdout exporter is used; otherwise traces are
// written to the supplied file path. The function is safe to call multiple
// times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, enabling OTLP, Jaeger or Zipkin integrations. The function
// is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
