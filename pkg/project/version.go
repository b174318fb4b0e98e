// SPDX-License-Identifier: MPL-2.0

package project

import (
	"os"
	"strings"
)

// versionMarker precedes the quoted version string in build.zig.zon.
const versionMarker = `.version = "`

// ReadVersion returns the text between the first `.version = "` in the file
// at path and the next double quote.
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &MetadataError{Path: path, Reason: "failed to read version source", Err: err}
	}
	return ParseVersion(string(data), path)
}

// ParseVersion extracts the version from version-source text. path is only
// used in error messages.
func ParseVersion(source, path string) (string, error) {
	_, rest, found := strings.Cut(source, versionMarker)
	if !found {
		return "", &MetadataError{Path: path, Reason: "no " + strings.TrimSpace(versionMarker) + `..." declaration found`}
	}
	version, _, found := strings.Cut(rest, `"`)
	if !found {
		return "", &MetadataError{Path: path, Reason: "unterminated version string"}
	}
	if version == "" {
		return "", &MetadataError{Path: path, Reason: "version string is empty"}
	}
	return version, nil
}
