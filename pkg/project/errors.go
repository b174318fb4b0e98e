// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
)

var (
	// ErrMetadata is the sentinel error wrapped by MetadataError.
	ErrMetadata = errors.New("invalid project metadata")
	// ErrInvariantViolation is the sentinel error wrapped by InvariantViolationError.
	ErrInvariantViolation = errors.New("project invariant violated")
)

type (
	// MetadataError reports a missing or malformed descriptor or version source.
	MetadataError struct {
		Path   string
		Reason string
		Err    error
	}

	// InvariantViolationError reports a descriptor that declares a value the
	// backend owns, such as a literal version.
	InvariantViolationError struct {
		Path string
		Key  string
	}
)

// Error implements the error interface.
func (e *MetadataError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrMetadata and the underlying cause, if any.
func (e *MetadataError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMetadata, e.Err}
	}
	return []error{ErrMetadata}
}

// Error implements the error interface.
func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: project.%s must not be declared; it is resolved from %s and must be listed in project.dynamic",
		e.Path, e.Key, VersionSourceFile)
}

// Unwrap returns ErrInvariantViolation for errors.Is() compatibility.
func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }
