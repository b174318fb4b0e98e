// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultCompatTag is the tag used when no configuration overrides it.
const DefaultCompatTag CompatTag = "py3-abi3-win_amd64"

// ErrInvalidCompatTag is the sentinel error wrapped by InvalidCompatTagError.
var ErrInvalidCompatTag = errors.New("invalid compatibility tag")

// compatTagPartPattern matches one tag component. Compressed tag sets are
// dot-separated (e.g. "py2.py3").
var compatTagPartPattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)

type (
	// CompatTag identifies the interpreter/ABI/platform combination a wheel
	// targets, written as "<python>-<abi>-<platform>".
	CompatTag string

	// InvalidCompatTagError is returned when a CompatTag does not have exactly
	// three well-formed components.
	InvalidCompatTagError struct {
		Value  CompatTag
		Reason string
	}
)

// String returns the string representation of the CompatTag.
func (t CompatTag) String() string { return string(t) }

// Validate returns an error if the tag is not "<python>-<abi>-<platform>".
func (t CompatTag) Validate() error {
	parts := strings.Split(string(t), "-")
	if len(parts) != 3 {
		return &InvalidCompatTagError{Value: t, Reason: fmt.Sprintf("expected 3 dash-separated components, got %d", len(parts))}
	}
	for _, part := range parts {
		if !compatTagPartPattern.MatchString(part) {
			return &InvalidCompatTagError{Value: t, Reason: fmt.Sprintf("malformed component %q", part)}
		}
	}
	return nil
}

// Python returns the interpreter component ("py3" in "py3-abi3-win_amd64").
func (t CompatTag) Python() string { return t.part(0) }

// ABI returns the ABI component ("abi3" in "py3-abi3-win_amd64").
func (t CompatTag) ABI() string { return t.part(1) }

// Platform returns the platform component ("win_amd64" in "py3-abi3-win_amd64").
func (t CompatTag) Platform() string { return t.part(2) }

func (t CompatTag) part(i int) string {
	parts := strings.SplitN(string(t), "-", 3)
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Error implements the error interface.
func (e *InvalidCompatTagError) Error() string {
	return fmt.Sprintf("invalid compatibility tag %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidCompatTag for errors.Is() compatibility.
func (e *InvalidCompatTagError) Unwrap() error { return ErrInvalidCompatTag }
