// Package naming maps test identifiers onto received and approved artifact
// locations under a documentation root.
package naming

import (
	"strings"
)

const (
	// DefaultSeparator separates namespace segments of a test identifier.
	DefaultSeparator = "::"

	receivedSuffix = "_received"
	approvedSuffix = "_approved"
)

// Kind identifies an artifact flavour.
type Kind string

const (
	KindReceived Kind = "received"
	KindApproved Kind = "approved"
)

// Scheme describes how identifiers are laid out on storage.
type Scheme struct {
	Root      string // documentation root, file path or afs URL
	Extension string // extension without leading dot
	Separator string // namespace separator, DefaultSeparator when empty
}

// Paths holds artifact locations of a single test identifier.
type Paths struct {
	Received string
	Approved string
}

// Dir returns the parent location of the approved artifact.
func (p Paths) Dir() string {
	if idx := strings.LastIndex(p.Approved, "/"); idx != -1 {
		return p.Approved[:idx]
	}
	return "."
}

// Derive returns received and approved locations for testID. Only namespace
// separators are rewritten; any other character is used as is.
func (s Scheme) Derive(testID string) Paths {
	base := strings.TrimRight(s.Root, "/") + "/" + s.relative(testID)
	return Paths{
		Received: base + receivedSuffix + "." + s.Extension,
		Approved: base + approvedSuffix + "." + s.Extension,
	}
}

// Parse reverses Derive: given an artifact location it returns the test
// identifier and artifact kind. ok is false for locations outside the scheme.
func (s Scheme) Parse(location string) (testID string, kind Kind, ok bool) {
	root := strings.TrimRight(s.Root, "/") + "/"
	if !strings.HasPrefix(location, root) {
		return "", "", false
	}
	rel := strings.TrimPrefix(location, root)
	ext := "." + s.Extension
	if !strings.HasSuffix(rel, ext) {
		return "", "", false
	}
	rel = strings.TrimSuffix(rel, ext)
	switch {
	case strings.HasSuffix(rel, receivedSuffix):
		kind = KindReceived
		rel = strings.TrimSuffix(rel, receivedSuffix)
	case strings.HasSuffix(rel, approvedSuffix):
		kind = KindApproved
		rel = strings.TrimSuffix(rel, approvedSuffix)
	default:
		return "", "", false
	}
	if rel == "" {
		return "", "", false
	}
	return strings.ReplaceAll(rel, "/", s.separator()), kind, true
}

// Identifier joins namespace segments with the scheme separator.
func (s Scheme) Identifier(segments ...string) string {
	return strings.Join(segments, s.separator())
}

func (s Scheme) relative(testID string) string {
	return strings.ReplaceAll(testID, s.separator(), "/")
}

func (s Scheme) separator() string {
	if s.Separator == "" {
		return DefaultSeparator
	}
	return s.Separator
}
