package approval

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors identifying failure classes. Use errors.Is to test them.
var (
	// ErrDirectoryCreation is returned when the approved artifact directory
	// cannot be created.
	ErrDirectoryCreation = errors.New("approval: directory creation failed")

	// ErrBaselineRead is returned when an existing approved artifact cannot be read.
	ErrBaselineRead = errors.New("approval: baseline read failed")

	// ErrReceivedWrite is returned when a mismatch was detected but the
	// received artifact could not be recorded.
	ErrReceivedWrite = errors.New("approval: received write failed")

	// ErrContentMismatch matches every *MismatchError.
	ErrContentMismatch = errors.New("approval: content mismatch")
)

// MismatchError reports content that differs from the approved baseline.
type MismatchError struct {
	TestID       string
	ApprovedPath string
	ReceivedPath string
	// Line is the 1-based line of first divergence.
	Line int
	// Diff describes the first divergence.
	Diff string
	// Unified optionally carries a unified diff of the whole document.
	Unified string
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "content mismatch at line %d\napproved: %s\nreceived: %s\n%s", e.Line, e.ApprovedPath, e.ReceivedPath, e.Diff)
	if e.Unified != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Unified)
	}
	return sb.String()
}

// Is reports whether target is ErrContentMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrContentMismatch
}
