package approval

import (
	"github.com/viant/docastest/service/diff"
	"github.com/viant/docastest/service/naming"
)

// State is the lifecycle state of a single case.
type State string

const (
	StateCreated      State = "created"
	StateAccumulating State = "accumulating"
	StateComparing    State = "comparing"
	StatePassed       State = "passed"
	StateMismatched   State = "mismatched"
	StateIOFailed     State = "ioFailed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StatePassed || s == StateMismatched || s == StateIOFailed
}

// Result captures the outcome of a comparison.
type Result struct {
	TestID   string
	Paths    naming.Paths
	State    State
	Expected string // trimmed baseline
	Actual   string // trimmed current content, as written on mismatch
	Diff     diff.Result
	Unified  string
	Stats    diff.Stats
	// CleanupErr is the non-fatal error raised while removing a stale received artifact.
	CleanupErr error
}
