// Package review inspects and resolves pending received artifacts.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/viant/docastest/service/artifact"
	"github.com/viant/docastest/service/diff"
	"github.com/viant/docastest/service/naming"
)

// Pending is a received artifact awaiting review.
type Pending struct {
	TestID string
	Paths  naming.Paths
	// HasApproved is false for cases that never had a baseline.
	HasApproved bool
}

// Report describes how a pending artifact differs from its baseline.
type Report struct {
	Pending
	Diff    diff.Result
	Unified string
	Stats   diff.Stats
}

// Service reviews artifacts of a single scheme.
type Service struct {
	store  artifact.Store
	scheme naming.Scheme
	logger *slog.Logger
}

// New creates a review service.
func New(store artifact.Store, scheme naming.Scheme, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, scheme: scheme, logger: logger}
}

// List returns pending artifacts ordered by test identifier.
func (s *Service) List(ctx context.Context) ([]*Pending, error) {
	locations, err := s.store.List(ctx, s.scheme.Root)
	if err != nil {
		return nil, err
	}
	rootPath := strings.TrimRight(artifact.Path(s.scheme.Root), "/")
	local := naming.Scheme{Root: rootPath, Extension: s.scheme.Extension, Separator: s.scheme.Separator}
	approved := map[string]bool{}
	var received []string
	for _, location := range locations {
		testID, kind, ok := local.Parse(artifact.Path(location))
		if !ok {
			continue
		}
		switch kind {
		case naming.KindApproved:
			approved[testID] = true
		case naming.KindReceived:
			received = append(received, testID)
		}
	}
	sort.Strings(received)
	result := make([]*Pending, 0, len(received))
	for _, testID := range received {
		result = append(result, &Pending{
			TestID:      testID,
			Paths:       s.scheme.Derive(testID),
			HasApproved: approved[testID],
		})
	}
	return result, nil
}

// Diff compares the received artifact of testID with its baseline.
func (s *Service) Diff(ctx context.Context, testID string, contextLines int) (*Report, error) {
	pending, err := s.lookup(ctx, testID)
	if err != nil {
		return nil, err
	}
	received, err := s.store.Read(ctx, pending.Paths.Received)
	if err != nil {
		return nil, err
	}
	var approved []byte
	if pending.HasApproved {
		if approved, err = s.store.Read(ctx, pending.Paths.Approved); err != nil {
			return nil, err
		}
	}
	expected := strings.TrimRight(string(approved), "\n")
	actual := strings.TrimRight(string(received), "\n")
	report := &Report{Pending: *pending, Diff: diff.Extract(expected, actual)}
	if report.Unified, err = diff.Unified(expected, actual, pending.Paths.Approved, contextLines); err != nil {
		return nil, err
	}
	if report.Stats, err = diff.ParseStats(report.Unified); err != nil {
		return nil, err
	}
	return report, nil
}

// Accept promotes the received artifact of testID to approved.
func (s *Service) Accept(ctx context.Context, testID string) (*Pending, error) {
	pending, err := s.lookup(ctx, testID)
	if err != nil {
		return nil, err
	}
	if err = s.store.Move(ctx, pending.Paths.Received, pending.Paths.Approved); err != nil {
		return nil, err
	}
	s.logger.Info("accepted received file", "test", testID, "path", pending.Paths.Approved)
	return pending, nil
}

// Discard deletes the received artifact of testID.
func (s *Service) Discard(ctx context.Context, testID string) error {
	pending, err := s.lookup(ctx, testID)
	if err != nil {
		return err
	}
	if err = s.store.Delete(ctx, pending.Paths.Received); err != nil {
		return err
	}
	s.logger.Info("discarded received file", "test", testID, "path", pending.Paths.Received)
	return nil
}

func (s *Service) lookup(ctx context.Context, testID string) (*Pending, error) {
	paths := s.scheme.Derive(testID)
	exists, err := s.store.Exists(ctx, paths.Received)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotPending, testID)
	}
	hasApproved, err := s.store.Exists(ctx, paths.Approved)
	if err != nil {
		return nil, err
	}
	return &Pending{TestID: testID, Paths: paths, HasApproved: hasApproved}, nil
}
