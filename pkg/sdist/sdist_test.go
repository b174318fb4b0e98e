// SPDX-License-Identifier: MPL-2.0

package sdist

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/typefriend/meow/internal/testutil"
	"github.com/typefriend/meow/pkg/project"
	"github.com/typefriend/meow/pkg/types"

	"github.com/klauspost/compress/gzip"
)

func readTarGz(t *testing.T, path string) (names []string, contents map[string]string, headers map[string]*tar.Header) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open sdist: %v", err)
	}
	defer testutil.MustClose(t, f)

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader() error: %v", err)
	}
	tr := tar.NewReader(gz)
	contents = make(map[string]string)
	headers = make(map[string]*tar.Header)
	for {
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("tar Next() error: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, h.Name)
		contents[h.Name] = string(data)
		headers[h.Name] = h
	}
	return names, contents, headers
}

func testOptions(t *testing.T, projectDir string) Options {
	t.Helper()
	return Options{
		Project:    &project.Metadata{Name: "meow", Version: "1.2.3"},
		ProjectDir: projectDir,
		OutputDir:  t.TempDir(),
		Filter:     DefaultFilter(),
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"src/foo.zig":               "const foo = 1;",
		"build.zig":                 "pub fn build() void {}",
		"readme.md":                 "# meow",
		"node_modules/leftover.txt": "junk",
	})

	opts := testOptions(t, dir)
	path, err := Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if filepath.Base(path) != "meow-1.2.3.tar.gz" {
		t.Errorf("sdist name = %q", filepath.Base(path))
	}
	if !filepath.IsAbs(path) {
		t.Errorf("sdist path %q is not absolute", path)
	}

	names, contents, _ := readTarGz(t, path)
	for _, want := range []string{"meow-1.2.3/src/foo.zig", "meow-1.2.3/build.zig", "meow-1.2.3/readme.md"} {
		if _, ok := contents[want]; !ok {
			t.Errorf("sdist is missing %s; entries: %v", want, names)
		}
	}
	for _, name := range names {
		if strings.Contains(name, "node_modules") {
			t.Errorf("sdist should exclude %s", name)
		}
		if name != "meow-1.2.3/" && !strings.HasPrefix(name, "meow-1.2.3/") {
			t.Errorf("entry %s is outside the archive root", name)
		}
	}
	if contents["meow-1.2.3/src/foo.zig"] != "const foo = 1;" {
		t.Errorf("src/foo.zig = %q", contents["meow-1.2.3/src/foo.zig"])
	}
}

func TestBuildCreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"build.zig": "pub fn build() void {}"})

	opts := testOptions(t, dir)
	opts.OutputDir = filepath.Join(opts.OutputDir, "out", "dist")
	path, err := Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if filepath.Dir(path) != opts.OutputDir {
		t.Errorf("sdist path = %q, want it in %q", path, opts.OutputDir)
	}
	if _, contents, _ := readTarGz(t, path); contents["meow-1.2.3/build.zig"] == "" {
		t.Error("sdist is missing build.zig")
	}
}

func TestBuildOrderAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"src/b.zig":       "b",
		"src/a/inner.zig": "a",
		"meow/backend.py": "py",
		"meow/other.py":   "no",
		"pyproject.toml":  "[project]",
		"build.zig.zon":   ".{}",
		"srcfoo/x.zig":    "no",
		"dist/old.tar.gz": "no",
	})

	path, err := Build(context.Background(), testOptions(t, dir))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	names, _, headers := readTarGz(t, path)
	want := []string{
		"meow-1.2.3/",
		"meow-1.2.3/build.zig.zon",
		"meow-1.2.3/meow/",
		"meow-1.2.3/meow/backend.py",
		"meow-1.2.3/pyproject.toml",
		"meow-1.2.3/src/",
		"meow-1.2.3/src/a/",
		"meow-1.2.3/src/a/inner.zig",
		"meow-1.2.3/src/b.zig",
	}
	if !slices.Equal(names, want) {
		t.Errorf("entries =\n%v\nwant\n%v", names, want)
	}
	if h := headers["meow-1.2.3/src/"]; h.Typeflag != tar.TypeDir || h.Mode != 0o755 {
		t.Errorf("src/ header = %c %o", h.Typeflag, h.Mode)
	}
}

func TestBuildPKGInfoAndTimestamp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"src/foo.zig": "x", "readme.md": "hello\n"})

	stamp := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	opts := testOptions(t, dir)
	opts.PKGInfo = true
	opts.Timestamp = stamp
	opts.Project.Readme = project.Readme{File: "readme.md", ContentType: "text/markdown"}

	path, err := Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	names, contents, headers := readTarGz(t, path)
	if names[len(names)-1] != "meow-1.2.3/PKG-INFO" {
		t.Errorf("last entry = %s, want PKG-INFO", names[len(names)-1])
	}
	pkgInfo := contents["meow-1.2.3/PKG-INFO"]
	for _, want := range []string{"Metadata-Version: 2.3\n", "Name: meow\n", "Version: 1.2.3\n", "\nhello\n"} {
		if !strings.Contains(pkgInfo, want) {
			t.Errorf("PKG-INFO missing %q:\n%s", want, pkgInfo)
		}
	}
	for name, h := range headers {
		if !h.ModTime.Equal(stamp) {
			t.Errorf("%s mtime = %v, want %v", name, h.ModTime, stamp)
		}
	}
}

func TestBuildIsReproducibleWithTimestamp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"src/foo.zig": "x", "build.zig": "y"})

	build := func() []byte {
		opts := testOptions(t, dir)
		opts.Timestamp = time.Unix(1700000000, 0)
		opts.PKGInfo = true
		path, err := Build(context.Background(), opts)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}
	if first, second := build(), build(); string(first) != string(second) {
		t.Error("two builds over identical input produced different sdists")
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing project directory", func(t *testing.T) {
		t.Parallel()
		opts := testOptions(t, filepath.Join(t.TempDir(), "missing"))
		_, err := Build(context.Background(), opts)
		if !errors.Is(err, types.ErrFilesystem) {
			t.Fatalf("Build() error = %v, want ErrFilesystem", err)
		}
		entries, _ := os.ReadDir(opts.OutputDir)
		if len(entries) != 0 {
			t.Errorf("output directory has %d entries after failure, want 0", len(entries))
		}
	})

	t.Run("empty output directory", func(t *testing.T) {
		t.Parallel()
		opts := testOptions(t, t.TempDir())
		opts.OutputDir = ""
		if _, err := Build(context.Background(), opts); !errors.Is(err, types.ErrInvalidFilesystemPath) {
			t.Fatalf("Build() error = %v, want ErrInvalidFilesystemPath", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		opts := testOptions(t, t.TempDir())
		if _, err := Build(ctx, opts); !errors.Is(err, context.Canceled) {
			t.Fatalf("Build() error = %v, want context.Canceled", err)
		}
	})
}

func TestFilter(t *testing.T) {
	t.Parallel()

	f := DefaultFilter()
	tests := []struct {
		path    string
		match   bool
		descend bool
	}{
		{".", true, true},
		{"src", true, true},
		{"src/foo.zig", true, true},
		{"src/deep/nested/x.zig", true, true},
		{"srcfoo", false, false},
		{"build.zig", true, true},
		{"build.zig.zon", true, true},
		{"pyproject.toml", true, true},
		{"readme.md", true, true},
		{"meow", true, true},
		{"meow/backend.py", true, true},
		{"meow/other.py", false, false},
		{"node_modules", false, false},
		{"node_modules/leftover.txt", false, false},
		{"README.md", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := f.Match(tt.path); got != tt.match {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.match)
			}
			if got := f.Descend(tt.path); got != tt.descend {
				t.Errorf("Descend(%q) = %v, want %v", tt.path, got, tt.descend)
			}
		})
	}

	custom := Filter{Include: []string{"docs/index.md"}}
	if custom.Match("docs") {
		t.Error("docs should not match")
	}
	if !custom.Descend("docs") {
		t.Error("docs should be descended to reach docs/index.md")
	}
}
