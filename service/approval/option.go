package approval

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for non-fatal housekeeping failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithUnifiedDiff attaches a unified diff with contextLines of context to
// every mismatch; contextLines < 0 disables it.
func WithUnifiedDiff(contextLines int) Option {
	return func(s *Service) { s.unifiedContext = contextLines }
}

// WithTracer records a span per comparison with tracer; nil selects the
// global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}
