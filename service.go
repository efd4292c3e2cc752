package docastest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/viant/docastest/service/approval"
	"github.com/viant/docastest/service/artifact"
	"github.com/viant/docastest/tracing"
)

// Service creates cases and approves them against one documentation root.
type Service struct {
	config   *Config
	store    artifact.Store
	logger   *slog.Logger
	approval *approval.Service

	newProvider func() (*tracing.Provider, error)
	provider    *tracing.Provider
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.store == nil {
		s.store = artifact.New(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newProvider != nil {
		provider, err := s.newProvider()
		if err != nil {
			s.logger.Warn("tracing disabled", "error", err)
		}
		s.provider = provider
	}
	unified := -1
	if s.config.Diff.Unified {
		unified = s.config.Diff.Context
	}
	s.approval = approval.New(s.store, s.config.Scheme(),
		approval.WithLogger(s.logger),
		approval.WithUnifiedDiff(unified),
		approval.WithTracer(s.provider.Tracer()))
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Store returns the artifact store.
func (s *Service) Store() artifact.Store {
	return s.store
}

// NewCase creates a case named name for testID.
func (s *Service) NewCase(name, testID string) *Case {
	return newCase(s, name, testID)
}

// Approve compares the rendered case with its approved artifact.
func (s *Service) Approve(ctx context.Context, c *Case) error {
	_, err := s.Compare(ctx, c)
	return err
}

// Compare is Approve returning the detailed result as well.
func (s *Service) Compare(ctx context.Context, c *Case) (*approval.Result, error) {
	c.state = approval.StateComparing
	result, err := s.approval.Compare(ctx, c.testID, c.Content())
	c.state = result.State
	return result, err
}

// Shutdown flushes spans and releases the trace output of this service.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.provider.Shutdown(ctx)
}

// New creates a Service.
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}

var (
	defaultService *Service
	defaultOnce    sync.Once
)

// Default returns the shared Service built from DefaultConfig.
func Default() *Service {
	defaultOnce.Do(func() {
		defaultService = New()
	})
	return defaultService
}
