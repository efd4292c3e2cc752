package review

import "errors"

// ErrNotPending is returned for identifiers without a received artifact.
var ErrNotPending = errors.New("review: no received file")
