package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "snake case", input: "basic_usage", expected: "Basic usage"},
		{name: "empty", input: "", expected: ""},
		{name: "already titled", input: "Using DocAsTest", expected: "Using DocAsTest"},
		{name: "rest unchanged", input: "widget_HTTP_api", expected: "Widget HTTP api"},
		{name: "leading underscore", input: "_private", expected: " private"},
		{name: "multibyte first rune", input: "élan_vital", expected: "Élan vital"},
		{name: "invalid first byte kept", input: "\xffoo_bar", expected: "\xffoo bar"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Title(tc.input))
		})
	}
}

func TestBuilder_Render(t *testing.T) {
	tests := []struct {
		name      string
		docName   string
		fragments []string
		expected  string
	}{
		{
			name:     "no fragments",
			docName:  "widget",
			expected: "= Widget\n\n",
		},
		{
			name:      "fragments joined verbatim",
			docName:   "Using DocAsTest",
			fragments: []string{"x", "y", "z"},
			expected:  "= Using DocAsTest\n\nxyz",
		},
		{
			name:      "caller controls newlines",
			docName:   "t",
			fragments: []string{"A\n", "\n  B", "\n"},
			expected:  "= T\n\nA\n\n  B\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			builder := New(tc.docName)
			for _, fragment := range tc.fragments {
				builder.Append(fragment)
			}
			assert.Equal(t, tc.expected, builder.Render())
			assert.Equal(t, tc.expected, builder.Render(), "render must not mutate state")
		})
	}
}

func TestBuilder_Appendf(t *testing.T) {
	builder := New("counts")
	builder.Appendf("%d items", 3)
	builder.Append("\n")
	assert.Equal(t, "3 items\n", builder.Body())
	assert.Equal(t, "Counts", builder.Title())
	assert.Equal(t, "counts", builder.Name())
}
