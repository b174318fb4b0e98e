// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error: what failed, on which file or
	// directory, why, and what to try next.
	//
	// Build one with ErrorContext:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("resolve project metadata").
	//		WithResource("./pyproject.toml").
	//		WithIssue(issue.DescriptorNotFoundId).
	//		Wrap(originalErr).
	//		Build()
	ActionableError struct {
		// Operation is a verb phrase ("build wheel", "load configuration").
		Operation string
		// Resource is the file or directory involved, if any.
		Resource string
		// Suggestions are short fixes shown under the message.
		Suggestions []string
		// Cause is the error being explained.
		Cause error
		// Issue links the error to a catalog entry with longer guidance.
		Issue Id
	}

	// ErrorContext accumulates the parts of an ActionableError.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause for errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message followed by its suggestions. Verbose output
// appends the cause tree, including every branch of joined errors; otherwise
// a linked catalog entry is pointed at instead.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteByte('\n')
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	switch {
	case verbose && e.Cause != nil:
		b.WriteString("\n\nError chain:")
		writeChain(&b, e.Cause, 1)
	case !verbose && e.Guide() != nil:
		fmt.Fprintf(&b, "\n\nRun again with --verbose for a troubleshooting guide (issue %d).", e.Issue)
	}
	return b.String()
}

// writeChain numbers the cause chain. The branches of a joined error are
// listed as bullets one level deeper.
func writeChain(b *strings.Builder, err error, depth int) {
	indent := strings.Repeat("  ", depth)
	for n := 1; err != nil; n++ {
		if depth == 1 {
			fmt.Fprintf(b, "\n%s%d. %s", indent, n, err.Error())
		} else {
			fmt.Fprintf(b, "\n%s- %s", indent, err.Error())
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, branch := range joined.Unwrap() {
				if branch != nil {
					writeChain(b, branch, depth+1)
				}
			}
			return
		}
		err = errors.Unwrap(err)
	}
}

// Guide returns the catalog entry linked to the error, or nil.
func (e *ActionableError) Guide() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

// WithOperation sets the failed operation.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the file or directory involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends one or more suggestions.
func (c *ErrorContext) WithSuggestion(sugs ...string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sugs...)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.err.Issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns a copy of the accumulated error, or nil when no operation
// was set. The builder may be reused afterwards.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}

// BuildError is Build for return statements: it yields a nil error, not a
// typed nil, when no operation was set.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
