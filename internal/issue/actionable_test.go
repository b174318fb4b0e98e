// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "build sdist"},
			want: "failed to build sdist",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "build sdist", Resource: "dist"},
			want: "failed to build sdist: dist",
		},
		{
			name: "with cause",
			err:  &ActionableError{Operation: "load configuration", Cause: errors.New("unexpected token")},
			want: "failed to load configuration: unexpected token",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "build wheel",
				Resource:  "dist",
				Cause:     errors.New("zig exited with status 1"),
				Issue:     BuildFailedId,
			},
			want: "failed to build wheel: dist: zig exited with status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	wrapped := &ActionableError{Operation: "build wheel", Cause: fmt.Errorf("stat zig: %w", fs.ErrNotExist)}
	if !errors.Is(wrapped, fs.ErrNotExist) {
		t.Error("errors.Is should reach through the cause")
	}
	if (&ActionableError{Operation: "build wheel"}).Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
}

type joinedErr struct{ errs []error }

func (e *joinedErr) Error() string   { return "metadata invalid" }
func (e *joinedErr) Unwrap() []error { return e.errs }

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions are bulleted",
			err: &ActionableError{
				Operation:   "load configuration",
				Resource:    "pyproject.toml",
				Suggestions: []string{"Check the [tool.meow] table", "Run 'meow config show'"},
			},
			contains: []string{
				"failed to load configuration: pyproject.toml\n",
				"\n  • Check the [tool.meow] table",
				"\n  • Run 'meow config show'",
			},
		},
		{
			name: "chain is verbose only",
			err: &ActionableError{
				Operation: "load configuration",
				Cause:     errors.New("unexpected token"),
			},
			contains: []string{"failed to load configuration: unexpected token"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "verbose numbers the chain",
			err: &ActionableError{
				Operation: "build wheel",
				Cause:     fmt.Errorf("compile: %w", errors.New("exit status 2")),
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"\n  1. compile: exit status 2",
				"\n  2. exit status 2",
			},
		},
		{
			name: "verbose lists joined branches",
			err: &ActionableError{
				Operation: "resolve project metadata",
				Cause: fmt.Errorf("load: %w", &joinedErr{errs: []error{
					errors.New("invalid project metadata"),
					fmt.Errorf("open: %w", fs.ErrNotExist),
				}}),
			},
			verbose: true,
			contains: []string{
				"\n  1. load: metadata invalid",
				"\n  2. metadata invalid",
				"\n    - invalid project metadata",
				"\n    - open: file does not exist",
				"\n    - file does not exist",
			},
		},
		{
			name:     "linked issue points at the guide",
			err:      &ActionableError{Operation: "build wheel", Issue: ToolchainNotFoundId},
			contains: []string{"--verbose", fmt.Sprintf("issue %d", ToolchainNotFoundId)},
		},
		{
			name:     "unknown issue is not advertised",
			err:      &ActionableError{Operation: "build wheel", Issue: Id(9999)},
			excludes: []string{"--verbose"},
		},
		{
			name: "verbose replaces the guide hint",
			err: &ActionableError{
				Operation: "build wheel",
				Cause:     errors.New("boom"),
				Issue:     BuildFailedId,
			},
			verbose:  true,
			contains: []string{"1. boom"},
			excludes: []string{"Run again with --verbose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format(%v) missing %q in:\n%s", tt.verbose, want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Format(%v) should not contain %q:\n%s", tt.verbose, unwanted, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")
	ae := NewErrorContext().
		WithOperation("build sdist").
		WithResource("dist").
		WithSuggestion("Check the directory permissions").
		WithSuggestion("Choose another output directory", "Run with --verbose").
		WithIssue(PermissionDeniedId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() = nil")
	}
	if ae.Operation != "build sdist" || ae.Resource != "dist" {
		t.Errorf("Operation/Resource = %q/%q", ae.Operation, ae.Resource)
	}
	if len(ae.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3 entries", ae.Suggestions)
	}
	if !errors.Is(ae, cause) {
		t.Error("Build() should keep the cause")
	}
	if ae.Issue != PermissionDeniedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, PermissionDeniedId)
	}
}

func TestErrorContext_RequiresOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("dist").Wrap(errors.New("boom"))
	if ae := ctx.Build(); ae != nil {
		t.Errorf("Build() = %v, want nil without an operation", ae)
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want a nil error interface", err)
	}
	if err := ctx.WithOperation("build sdist").BuildError(); err == nil {
		t.Error("BuildError() = nil once an operation is set")
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("load configuration").WithSuggestion("first")
	first := ctx.Build()
	second := ctx.WithSuggestion("second").Build()

	if len(first.Suggestions) != 1 {
		t.Errorf("first.Suggestions = %v, later builder calls must not leak into it", first.Suggestions)
	}
	if len(second.Suggestions) != 2 {
		t.Errorf("second.Suggestions = %v, want 2 entries", second.Suggestions)
	}
	if first == second {
		t.Error("Build() should return a fresh error each time")
	}
}

func TestActionableError_Guide(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("build wheel").
		WithIssue(ToolchainNotFoundId).
		Build()
	if guide := ae.Guide(); guide == nil || guide.Id() != ToolchainNotFoundId {
		t.Errorf("Guide() = %v, want the toolchain entry", guide)
	}
	if (&ActionableError{Operation: "x"}).Guide() != nil {
		t.Error("Guide() should be nil without an issue")
	}
}
