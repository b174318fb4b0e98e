// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ProjectOptions describes a fixture project written by NewProject.
type ProjectOptions struct {
	Name    string
	Version string
	// ProjectExtra is appended verbatim inside the [project] table.
	ProjectExtra string
	// Tool is appended verbatim after the [project] table (e.g. a [tool.meow] table).
	Tool string
	// Files are extra files written with WriteTree.
	Files map[string]string
}

// NewProject writes pyproject.toml and build.zig.zon into a fresh temp dir
// and returns its path.
func NewProject(t testing.TB, opts ProjectOptions) string {
	t.Helper()
	if opts.Name == "" {
		opts.Name = "meow"
	}
	if opts.Version == "" {
		opts.Version = "1.2.3"
	}

	dir := t.TempDir()
	pyproject := fmt.Sprintf("[project]\nname = %q\ndynamic = [\"version\"]\n%s\n%s", opts.Name, opts.ProjectExtra, opts.Tool)
	zon := fmt.Sprintf(".{\n    .name = .%s,\n    .version = %q,\n    .paths = .{\"\"},\n}\n", opts.Name, opts.Version)

	files := map[string]string{
		"pyproject.toml": pyproject,
		"build.zig.zon":  zon,
	}
	for k, v := range opts.Files {
		files[k] = v
	}
	WriteTree(t, dir, files)
	return dir
}

// FakeBuildTool writes an executable shell script at path that mimics
// `zig build ... --prefix-lib-dir <dir>`: it writes each of artifacts into the
// prefix directory with the content "artifact:<name>" and exits with exitCode.
// Every invocation's arguments are appended to path+".args", one per line.
// The test is skipped where /bin/sh scripts cannot be executed.
func FakeBuildTool(t testing.TB, path string, exitCode int, artifacts ...string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake build tool requires a POSIX shell")
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, "for a in \"$@\"; do echo \"$a\" >> %q; done\n", path+".args")
	script.WriteString("prefix=\"\"\nwhile [ $# -gt 0 ]; do\n  if [ \"$1\" = \"--prefix-lib-dir\" ]; then prefix=\"$2\"; fi\n  shift\ndone\n")
	for _, a := range artifacts {
		fmt.Fprintf(&script, "printf 'artifact:%s' > \"$prefix/%s\"\n", a, a)
	}
	fmt.Fprintf(&script, "exit %d\n", exitCode)

	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(script.String()), 0o755); err != nil {
		t.Fatalf("failed to write fake build tool: %v", err)
	}
}

// ReadArgs returns the arguments recorded by a FakeBuildTool at path.
func ReadArgs(t testing.TB, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path + ".args")
	if err != nil {
		t.Fatalf("failed to read recorded args: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
