// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// formatError rewrites a CUE error into key-path notation.
//
// Error format: <key-path>: <message>
//
// Examples:
//   - project.name: invalid value "my pkg"
//   - tool.meow.sdist.include[2]: conflicting values
//
// The file name is left to the caller, which already reports it. Errors that
// do not come from CUE are wrapped unchanged.
func formatError(err error, prefix string) error {
	if err == nil {
		return nil
	}

	var cueErr errors.Error
	if !errors.As(err, &cueErr) {
		if prefix == "" {
			return err
		}
		return fmt.Errorf("%s: %w", prefix, err)
	}

	cueErrors := errors.Errors(err)
	lines := make([]string, 0, len(cueErrors))
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := errors.StringWithConfig(e, &errors.Config{OmitPath: true})

		switch {
		case prefix != "" && pathStr != "":
			pathStr = prefix + "." + pathStr
		case prefix != "":
			pathStr = prefix
		}

		if pathStr != "" {
			lines = append(lines, pathStr+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s", lines[0])
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path (["#Project", "dependencies", "0"])
// to key-path notation ("dependencies[0]"). Definition selectors are dropped
// since they never appear in the user's document.
func formatPath(path []string) string {
	var result strings.Builder
	for _, part := range path {
		if strings.HasPrefix(part, "#") {
			continue
		}
		if result.Len() > 0 && isIndex(part) {
			result.WriteString("[" + part + "]")
			continue
		}
		if result.Len() > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
