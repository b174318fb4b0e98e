// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"

	"github.com/typefriend/meow/pkg/types"
)

var (
	// ErrToolchainMissing is returned when the build tool is not present at its expected location.
	ErrToolchainMissing = errors.New("build tool not found")
	// ErrBuildFailed is the sentinel error wrapped by BuildFailedError.
	ErrBuildFailed = errors.New("build failed")
)

type (
	// ToolchainMissingError reports the path that was checked.
	ToolchainMissingError struct {
		Path string
		Err  error
	}

	// BuildFailedError reports a build tool that exited non-zero.
	BuildFailedError struct {
		Tool     string
		ExitCode types.ExitCode
		Err      error
	}
)

// Error implements the error interface.
func (e *ToolchainMissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build tool not found at %s: %v", e.Path, e.Err)
	}
	return "build tool not found at " + e.Path
}

// Unwrap returns ErrToolchainMissing for errors.Is() compatibility.
func (e *ToolchainMissingError) Unwrap() error { return ErrToolchainMissing }

// Error implements the error interface.
func (e *BuildFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s exited with status %d: %v", e.Tool, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}

// Unwrap returns ErrBuildFailed for errors.Is() compatibility.
func (e *BuildFailedError) Unwrap() error { return ErrBuildFailed }
