// Package diff locates the first line at which two texts diverge and renders
// supplementary unified diffs for reports.
package diff

import (
	"fmt"
	"strings"
)

// Kind classifies the outcome of Extract.
type Kind int

const (
	// Equal means both texts hold the same lines.
	Equal Kind = iota
	// Diverged means a line present on both sides differs.
	Diverged
	// LeftLonger means right ran out of lines first.
	LeftLonger
	// RightLonger means left ran out of lines first.
	RightLonger
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Diverged:
		return "diverged"
	case LeftLonger:
		return "left greater"
	case RightLonger:
		return "right greater"
	}
	return "unknown"
}

// Result describes where a lockstep line walk stopped.
type Result struct {
	Kind Kind
	// Line is the 1-based line where the walk stopped. For Equal it is the
	// number of lines compared; for LeftLonger and RightLonger it is one past
	// the last line of the shorter side.
	Line  int
	Left  string // left line content, Diverged only
	Right string // right line content, Diverged only
}

// Message returns a human readable description; empty for Equal.
func (r Result) Message() string {
	switch r.Kind {
	case Diverged:
		return fmt.Sprintf("line %d differs\nleft:  %s\nright: %s", r.Line, r.Left, r.Right)
	case LeftLonger, RightLonger:
		return fmt.Sprintf("%s, from line %d", r.Kind, r.Line)
	}
	return ""
}

// Extract walks left and right line by line and reports the first divergence.
// Lines are split on "\n" only; "\r" is content.
func Extract(left, right string) Result {
	leftLines := splitLines(left)
	rightLines := splitLines(right)
	line := 0
	for {
		leftDone := line >= len(leftLines)
		rightDone := line >= len(rightLines)
		switch {
		case leftDone && rightDone:
			return Result{Kind: Equal, Line: line}
		case leftDone:
			return Result{Kind: RightLonger, Line: line + 1}
		case rightDone:
			return Result{Kind: LeftLonger, Line: line + 1}
		}
		if leftLines[line] != rightLines[line] {
			return Result{Kind: Diverged, Line: line + 1, Left: leftLines[line], Right: rightLines[line]}
		}
		line++
	}
}

// splitLines returns the lines of text; an empty text has no lines and a
// final line break does not start a new line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
