package docastest

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/docastest/service/artifact"
	"github.com/viant/docastest/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service.
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps the defaults.
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithStore sets the artifact store.
func WithStore(store artifact.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithFS stores artifacts through the supplied afs service, for example
// one with cloud storage schemes registered.
func WithFS(fs afs.Service) Option {
	return func(s *Service) { s.store = artifact.New(fs) }
}

// WithLogger sets the logger used for housekeeping warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTracing exports a span per comparison as JSON to os.Stdout, or to
// outputFile when set. Call Service.Shutdown to flush and close the file.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.newProvider = func() (*tracing.Provider, error) {
			return tracing.NewStdoutProvider(serviceName, serviceVersion, outputFile)
		}
	}
}

// WithTracingExporter exports a span per comparison through exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.newProvider = func() (*tracing.Provider, error) {
			return tracing.NewProvider(serviceName, serviceVersion, exporter)
		}
	}
}
