// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path given by a caller: a project root, an output
	// directory or a config file. Relative paths are relative to the working
	// directory. Blank is never valid.
	FilesystemPath string

	// InvalidFilesystemPathError reports a blank path.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

func (p FilesystemPath) String() string { return string(p) }

// Validate rejects empty and whitespace-only paths.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p}
	}
	return nil
}

// Abs validates p and resolves it against the working directory.
func (p FilesystemPath) Abs() (FilesystemPath, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", string(p), err)
	}
	return FilesystemPath(abs), nil
}

// Join appends slash-separated elements to p.
func (p FilesystemPath) Join(elem ...string) FilesystemPath {
	parts := append([]string{string(p)}, elem...)
	for i := 1; i < len(parts); i++ {
		parts[i] = filepath.FromSlash(parts[i])
	}
	return FilesystemPath(filepath.Join(parts...))
}

// Error implements the error interface.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("path %q is blank", string(e.Value))
}

// Unwrap returns ErrInvalidFilesystemPath.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
