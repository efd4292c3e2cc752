// Package content accumulates document fragments and renders them under a
// title heading.
package content

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Builder keeps fragments in insertion order. The zero value is ready to use.
type Builder struct {
	name      string
	fragments []string
}

// New creates a builder for a document named name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Append adds fragment verbatim; no separator is inserted.
func (b *Builder) Append(fragment string) {
	b.fragments = append(b.fragments, fragment)
}

// Appendf formats and appends a fragment.
func (b *Builder) Appendf(format string, args ...interface{}) {
	b.Append(fmt.Sprintf(format, args...))
}

// Name returns the document name.
func (b *Builder) Name() string {
	return b.name
}

// Title returns the heading derived from the document name.
func (b *Builder) Title() string {
	return Title(b.name)
}

// Body returns the fragments joined without separators.
func (b *Builder) Body() string {
	return strings.Join(b.fragments, "")
}

// Render returns "= {title}\n\n{body}".
func (b *Builder) Render() string {
	var sb strings.Builder
	sb.WriteString("= ")
	sb.WriteString(b.Title())
	sb.WriteString("\n\n")
	for _, fragment := range b.fragments {
		sb.WriteString(fragment)
	}
	return sb.String()
}

// Title uppercases the first character of name and replaces underscores with
// spaces; the rest is unchanged.
func Title(name string) string {
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	rest := strings.ReplaceAll(name[size:], "_", " ")
	switch {
	case r == '_':
		return " " + rest
	case r == utf8.RuneError && size == 1:
		return name[:size] + rest
	}
	return string(unicode.ToUpper(r)) + rest
}
