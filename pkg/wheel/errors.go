// SPDX-License-Identifier: MPL-2.0

package wheel

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrArtifactMissing is returned when the build succeeded but the expected
	// compiled artifact is not in the staging area.
	ErrArtifactMissing = errors.New("compiled artifact missing")
	// ErrAmbiguousArtifact is returned when the build produced more than one
	// candidate artifact.
	ErrAmbiguousArtifact = errors.New("ambiguous compiled artifact")
)

// ArtifactError reports what the staging area held when the artifact lookup failed.
type ArtifactError struct {
	Expected string
	Found    []string
	Err      error
}

// Error implements the error interface.
func (e *ArtifactError) Error() string {
	found := "nothing"
	if len(e.Found) > 0 {
		found = strings.Join(e.Found, ", ")
	}
	return fmt.Sprintf("%v: expected %s, build produced %s", e.Err, e.Expected, found)
}

// Unwrap returns ErrArtifactMissing or ErrAmbiguousArtifact.
func (e *ArtifactError) Unwrap() error { return e.Err }
