// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
var ErrInvalidPackageName = errors.New("invalid package name")

var (
	// packageNamePattern is the distribution name grammar: ASCII letters and
	// digits, with '.', '_' and '-' allowed only between them.
	packageNamePattern = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

	separatorRunPattern = regexp.MustCompile(`[-_.]+`)
)

type (
	// PackageName is a distribution name as declared in the project descriptor.
	// Valid names are safe to use as path components and archive members.
	PackageName string

	// InvalidPackageNameError is returned when a PackageName does not match
	// the distribution name grammar.
	InvalidPackageNameError struct {
		Value PackageName
	}
)

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// Validate returns an error if the name is not a valid distribution name.
func (n PackageName) Validate() error {
	if !packageNamePattern.MatchString(string(n)) {
		return &InvalidPackageNameError{Value: n}
	}
	return nil
}

// Escaped returns the name with every run of '-', '_' and '.' replaced by a
// single '_', the form used in wheel and dist-info file names where '-'
// separates fields. Names without separators are returned unchanged.
func (n PackageName) Escaped() string {
	return separatorRunPattern.ReplaceAllString(string(n), "_")
}

// Error implements the error interface.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: must start and end with a letter or digit and contain only letters, digits, '.', '_' or '-'", e.Value)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }
