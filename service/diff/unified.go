package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

const defaultContext = 3

// Stats summarises a unified diff.
type Stats struct {
	Added   int
	Changed int
	Deleted int
	Hunks   int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d hunk(s), +%d -%d ~%d", s.Hunks, s.Added, s.Deleted, s.Changed)
}

// Unified renders a unified diff from expected to actual. The empty string is
// returned when both texts are identical.
func Unified(expected, actual, location string, contextLines int) (string, error) {
	if expected == actual {
		return "", nil
	}
	if contextLines <= 0 {
		contextLines = defaultContext
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: location + " (approved)",
		ToFile:   location + " (received)",
		Context:  contextLines,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("diff generation: %w", err)
	}
	return patch, nil
}

// ParseStats parses a unified diff produced by Unified.
func ParseStats(patch string) (Stats, error) {
	if patch == "" {
		return Stats{}, nil
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return Stats{}, fmt.Errorf("parse diff: %w", err)
	}
	stat := fileDiff.Stat()
	return Stats{
		Added:   int(stat.Added),
		Changed: int(stat.Changed),
		Deleted: int(stat.Deleted),
		Hunks:   len(fileDiff.Hunks),
	}, nil
}
