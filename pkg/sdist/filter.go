// SPDX-License-Identifier: MPL-2.0

package sdist

import (
	"path"
	"strings"
)

// Filter decides which project paths enter the sdist. Paths are
// root-relative and slash-separated; "." is the project root.
type Filter struct {
	// SourceDirs are included recursively.
	SourceDirs []string
	// Include lists exact paths that are included on their own.
	Include []string
}

// DefaultFilter returns the allow-list used when nothing is configured.
func DefaultFilter() Filter {
	return Filter{
		SourceDirs: []string{"src"},
		Include: []string{
			"build.zig",
			"build.zig.zon",
			"pyproject.toml",
			"readme.md",
			"meow",
			"meow/backend.py",
		},
	}
}

// Match reports whether rel belongs in the archive.
func (f Filter) Match(rel string) bool {
	rel = clean(rel)
	if rel == "." {
		return true
	}
	for _, dir := range f.SourceDirs {
		if within(rel, clean(dir)) {
			return true
		}
	}
	for _, inc := range f.Include {
		if rel == clean(inc) {
			return true
		}
	}
	return false
}

// Descend reports whether the walk must enter the directory rel, either
// because it matches or because an included path lies below it.
func (f Filter) Descend(rel string) bool {
	if f.Match(rel) {
		return true
	}
	rel = clean(rel)
	for _, p := range append(append([]string(nil), f.SourceDirs...), f.Include...) {
		if within(clean(p), rel) {
			return true
		}
	}
	return false
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	return p == dir || strings.HasPrefix(p, dir+"/")
}

func clean(p string) string {
	return path.Clean(strings.TrimPrefix(p, "./"))
}
