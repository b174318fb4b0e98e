// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

// ErrFilesystem is the sentinel matched by every FilesystemError.
var ErrFilesystem = errors.New("filesystem error")

// FilesystemError reports an I/O failure while staging, walking, or archiving.
// It matches ErrFilesystem with errors.Is and unwraps to the underlying cause.
type FilesystemError struct {
	// Op is a short verb phrase such as "create staging area" or "write RECORD".
	Op   string
	Path string
	Err  error
}

// NewFilesystemError wraps err with the operation and path it failed on.
// It returns nil when err is nil.
func NewFilesystemError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FilesystemError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *FilesystemError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FilesystemError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFilesystem.
func (e *FilesystemError) Is(target error) bool { return target == ErrFilesystem }
