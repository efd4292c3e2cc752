package docastest

import (
	"context"

	"github.com/viant/docastest/service/approval"
	"github.com/viant/docastest/service/content"
)

// Case is a single document under approval. It is not safe for concurrent use.
type Case struct {
	service *Service
	testID  string
	builder *content.Builder
	state   approval.State
}

func newCase(service *Service, name, testID string) *Case {
	return &Case{
		service: service,
		testID:  testID,
		builder: content.New(name),
		state:   approval.StateCreated,
	}
}

// NewCase creates a case bound to the Default service.
func NewCase(name, testID string) *Case {
	return Default().NewCase(name, testID)
}

// Write appends fragment verbatim.
func (c *Case) Write(fragment string) {
	c.builder.Append(fragment)
	c.state = approval.StateAccumulating
}

// Writef appends a formatted fragment.
func (c *Case) Writef(format string, args ...interface{}) {
	c.builder.Appendf(format, args...)
	c.state = approval.StateAccumulating
}

// Name returns the case name.
func (c *Case) Name() string { return c.builder.Name() }

// TestID returns the identifier used to locate artifacts.
func (c *Case) TestID() string { return c.testID }

// Title returns the heading derived from the case name.
func (c *Case) Title() string { return c.builder.Title() }

// Content renders the document.
func (c *Case) Content() string { return c.builder.Render() }

// State returns the lifecycle state.
func (c *Case) State() approval.State { return c.state }

// Approve compares the document with its approved artifact, see approval.Service.Approve.
func (c *Case) Approve(ctx context.Context) error {
	return c.service.Approve(ctx, c)
}
