package docastest

import (
	"context"
	"runtime"
	"strings"
)

// TB is the subset of testing.TB used by Run.
type TB interface {
	Helper()
	Name() string
	Fatal(args ...interface{})
}

// Run wraps a test body with the Default service, see Service.Run.
func Run(t TB, title string, body func(doc *Case)) {
	t.Helper()
	Default().run(t, title, body, callerPackage(2))
}

// Run creates a case for the calling test, executes body and approves the
// result, failing t on any error. The identifier is the calling package name
// followed by the segments of t.Name(); an empty title is derived from the
// test name.
func (s *Service) Run(t TB, title string, body func(doc *Case)) {
	t.Helper()
	s.run(t, title, body, callerPackage(2))
}

func (s *Service) run(t TB, title string, body func(doc *Case), pkg string) {
	t.Helper()
	testID, name := s.Identify(pkg, t.Name())
	if title == "" {
		title = name
	}
	doc := s.NewCase(title, testID)
	body(doc)
	if err := doc.Approve(context.Background()); err != nil {
		t.Fatal(err)
	}
}

// Identify returns the test identifier and default case name of test
// testName (as reported by testing.T.Name) declared in package pkg.
func (s *Service) Identify(pkg, testName string) (testID, name string) {
	segments := strings.Split(testName, "/")
	if pkg != "" {
		segments = append([]string{pkg}, segments...)
	}
	last := segments[len(segments)-1]
	name = strings.TrimPrefix(strings.TrimPrefix(last, "Test"), "_")
	if name == "" {
		name = last
	}
	return s.config.Scheme().Identifier(segments...), name
}

// callerPackage returns the package name of the function skip frames up,
// without the _test suffix of external test packages.
func callerPackage(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	qualified := fn.Name()
	if idx := strings.LastIndex(qualified, "/"); idx != -1 {
		qualified = qualified[idx+1:]
	}
	if idx := strings.Index(qualified, "."); idx != -1 {
		qualified = qualified[:idx]
	}
	return strings.TrimSuffix(qualified, "_test")
}
