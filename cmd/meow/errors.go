// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/typefriend/meow/internal/config"
	"github.com/typefriend/meow/internal/issue"
	"github.com/typefriend/meow/internal/toolchain"
	"github.com/typefriend/meow/pkg/project"
	"github.com/typefriend/meow/pkg/types"
	"github.com/typefriend/meow/pkg/wheel"

	"github.com/charmbracelet/log"
)

// ExitError carries the process status of a failed command back to Run,
// so RunE handlers never call os.Exit.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + e.Code.String()
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitCodeFor maps a failed hook to the process status: a failed build
// propagates the tool's own status, everything else exits 1.
func exitCodeFor(err error) types.ExitCode {
	var buildErr *toolchain.BuildFailedError
	if errors.As(err, &buildErr) {
		return buildErr.ExitCode.AsFailure()
	}
	return types.ExitFailure
}

// classifyError returns the catalog entry that explains err, or 0.
func classifyError(err error) issue.Id {
	var metaErr *project.MetadataError
	switch {
	case errors.Is(err, project.ErrInvariantViolation):
		return issue.LiteralVersionId
	case errors.As(err, &metaErr):
		switch {
		case filepath.Base(metaErr.Path) == project.VersionSourceFile:
			return issue.VersionSourceInvalidId
		case errors.Is(err, fs.ErrNotExist):
			return issue.DescriptorNotFoundId
		default:
			return issue.MetadataInvalidId
		}
	case errors.Is(err, toolchain.ErrToolchainMissing):
		return issue.ToolchainNotFoundId
	case errors.Is(err, toolchain.ErrBuildFailed):
		return issue.BuildFailedId
	case errors.Is(err, wheel.ErrArtifactMissing):
		return issue.ArtifactMissingId
	case errors.Is(err, wheel.ErrAmbiguousArtifact):
		return issue.AmbiguousArtifactId
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, config.ErrInvalidLoadOptions):
		return issue.ConfigLoadFailedId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	}
	return 0
}

// hookError wraps a failed hook in an ActionableError linked to its catalog
// entry, and carries the exit status.
func hookError(operation, resource string, err error) error {
	ae := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithIssue(classifyError(err)).
		Wrap(err).
		Build()
	return &ExitError{Code: exitCodeFor(err), Err: ae}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderError writes the error and, in verbose mode, the linked catalog guide.
func renderError(w io.Writer, err error, verbose bool, logger *log.Logger) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if !verbose {
		return
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	if guide := ae.Guide(); guide != nil {
		rendered, renderErr := guide.Render("auto")
		if renderErr != nil {
			logger.Warn("failed to render issue guide", "issue", ae.Issue, "err", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}
