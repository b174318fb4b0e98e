// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

const (
	// ExitSuccess is the status of a clean run.
	ExitSuccess ExitCode = 0
	// ExitFailure is reported when no more specific status is known.
	ExitFailure ExitCode = 1
)

type (
	// ExitCode is a process exit status as a parent process sees it, so
	// only 0-255 is representable.
	ExitCode int

	// InvalidExitCodeError reports a status outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// ExitCodeOf returns the status of the process whose Wait or Run produced
// err. A process that was killed by a signal or never started yields
// ExitFailure, as does any error that did not come from os/exec.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := ExitCode(exitErr.ExitCode()); code.Validate() == nil && !code.IsSuccess() {
			return code
		}
	}
	return ExitFailure
}

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d is outside 0-255", e.Value)
}

// Unwrap returns ErrInvalidExitCode.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects statuses a process cannot report.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether c is ExitSuccess.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// AsFailure returns c when it is a reportable failure status and
// ExitFailure otherwise, so a failed operation never exits 0.
func (c ExitCode) AsFailure() ExitCode {
	if c.IsSuccess() || c.Validate() != nil {
		return ExitFailure
	}
	return c
}

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
