// Package idgen produces unique suffixes for temporary artifact names. NewFunc
// can be replaced in tests to make names predictable.
package idgen

import "github.com/google/uuid"

// NewFunc returns a random UUID string.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new unique identifier.
func New() string { return NewFunc() }
