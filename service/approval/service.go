package approval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/docastest/service/artifact"
	"github.com/viant/docastest/service/diff"
	"github.com/viant/docastest/service/naming"
	"github.com/viant/docastest/tracing"
	"go.opentelemetry.io/otel/trace"
)

var (
	unifiedDiff = diff.Unified
	parseStats  = diff.ParseStats
)

// Service compares documents with approved artifacts. It holds no per-case
// state and can be shared by concurrently running cases with distinct ids.
type Service struct {
	store          artifact.Store
	scheme         naming.Scheme
	logger         *slog.Logger
	tracer         trace.Tracer
	unifiedContext int
}

// New creates an approval service over store laid out by scheme.
func New(store artifact.Store, scheme naming.Scheme, options ...Option) *Service {
	ret := &Service{
		store:  store,
		scheme: scheme,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Scheme returns the artifact layout.
func (s *Service) Scheme() naming.Scheme {
	return s.scheme
}

// Approve compares content with the approved artifact of testID. It returns
// nil on match, a *MismatchError on mismatch, or an I/O error wrapping one of
// ErrDirectoryCreation, ErrBaselineRead or ErrReceivedWrite.
func (s *Service) Approve(ctx context.Context, testID, content string) error {
	_, err := s.Compare(ctx, testID, content)
	return err
}

// Compare runs the approval and returns its result alongside the error
// Approve would return.
func (s *Service) Compare(ctx context.Context, testID, content string) (result *Result, err error) {
	ctx, span := tracing.StartSpan(ctx, s.tracer, "docastest.approve")
	result = &Result{TestID: testID, Paths: s.scheme.Derive(testID), State: StateComparing}
	defer func() {
		span.WithAttributes(map[string]string{
			"test.id":       testID,
			"path.approved": result.Paths.Approved,
			"path.received": result.Paths.Received,
			"state":         string(result.State),
		})
		if result.State == StateMismatched {
			span.WithInt("divergence.line", result.Diff.Line)
		}
		tracing.EndSpan(span, err)
	}()

	paths := result.Paths
	if err = s.store.EnsureDir(ctx, paths.Dir()); err != nil {
		result.State = StateIOFailed
		return result, fmt.Errorf("%w: %w", ErrDirectoryCreation, err)
	}

	baseline, err := s.loadBaseline(ctx, paths.Approved)
	if err != nil {
		result.State = StateIOFailed
		return result, fmt.Errorf("%w: %w", ErrBaselineRead, err)
	}

	result.Expected = strings.TrimRight(baseline, "\n")
	result.Actual = strings.TrimRight(content, "\n")

	result.CleanupErr = s.removeStale(ctx, paths.Received)

	if result.Actual == result.Expected {
		result.State = StatePassed
		return result, nil
	}

	result.Diff = diff.Extract(result.Expected, result.Actual)
	if s.unifiedContext >= 0 {
		s.attachUnified(result)
	}

	if err = s.store.Write(ctx, paths.Received, []byte(result.Actual)); err != nil {
		result.State = StateIOFailed
		return result, fmt.Errorf("%w: failed to write current content: %w", ErrReceivedWrite, err)
	}

	result.State = StateMismatched
	err = &MismatchError{
		TestID:       testID,
		ApprovedPath: paths.Approved,
		ReceivedPath: paths.Received,
		Line:         result.Diff.Line,
		Diff:         result.Diff.Message(),
		Unified:      result.Unified,
	}
	return result, err
}

// attachUnified adds the unified diff and its stats to result; failures only
// cost the supplementary report.
func (s *Service) attachUnified(result *Result) {
	unified, err := unifiedDiff(result.Expected, result.Actual, result.Paths.Approved, s.unifiedContext)
	if err != nil {
		s.logger.Warn("could not build unified diff", "test", result.TestID, "error", err)
		return
	}
	result.Unified = unified
	if result.Stats, err = parseStats(unified); err != nil {
		s.logger.Warn("could not parse unified diff stats", "test", result.TestID, "error", err)
	}
}

// loadBaseline returns the approved document, or "" when it does not exist yet.
func (s *Service) loadBaseline(ctx context.Context, location string) (string, error) {
	exists, err := s.store.Exists(ctx, location)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}
	data, err := s.store.Read(ctx, location)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// removeStale deletes the received artifact of an earlier run. Failures are
// logged and returned for inspection only.
func (s *Service) removeStale(ctx context.Context, location string) error {
	exists, err := s.store.Exists(ctx, location)
	if err == nil && !exists {
		return nil
	}
	if err == nil {
		err = s.store.Delete(ctx, location)
	}
	if err != nil {
		s.logger.Warn("could not remove received file", "path", location, "error", err)
	}
	return err
}
