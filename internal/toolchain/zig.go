// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/typefriend/meow/pkg/types"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

// DefaultOptimize is the zig optimization mode used for release wheels.
const DefaultOptimize = "ReleaseSafe"

// Zig invokes `zig build` to compile the extension into a prefix directory.
type Zig struct {
	// Path is the zig executable. It is used as-is and never looked up on PATH.
	Path string
	// Optimize is passed as -Doptimize.
	Optimize string
	// PythonExe is passed as -Dpython-exe.
	PythonExe string
	// ExtraArgs are appended after the fixed arguments.
	ExtraArgs []string
	// Dir is the working directory of the build (the project root).
	Dir string

	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// ParseExtraArgs splits a shell-quoted argument string ("-Dfoo='a b' -j4")
// into words. Parameter expansion is not performed.
func ParseExtraArgs(s string) ([]string, error) {
	fields, err := shell.Fields(s, func(string) string { return "" })
	if err != nil {
		return nil, fmt.Errorf("parse extra build args %q: %w", s, err)
	}
	return fields, nil
}

// Check reports ErrToolchainMissing unless Path names an existing regular file.
func (z *Zig) Check() error {
	info, err := os.Stat(z.Path)
	if err != nil {
		return &ToolchainMissingError{Path: z.Path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &ToolchainMissingError{Path: z.Path, Err: errors.New("not a regular file")}
	}
	return nil
}

// Args returns the argument list for a build into prefixDir.
func (z *Zig) Args(prefixDir string) []string {
	optimize := z.Optimize
	if optimize == "" {
		optimize = DefaultOptimize
	}
	args := []string{
		"build",
		"-Doptimize=" + optimize,
		"-Dpython-exe=" + z.PythonExe,
		"--prefix-lib-dir",
		prefixDir,
	}
	return append(args, z.ExtraArgs...)
}

// Compile runs the build and blocks until it exits. A non-zero exit is
// reported as a BuildFailedError carrying the tool's exit status.
func (z *Zig) Compile(ctx context.Context, prefixDir string) error {
	args := z.Args(prefixDir)
	cmd := exec.CommandContext(ctx, z.Path, args...)
	cmd.Dir = z.Dir
	cmd.Stdout = writerOr(z.Stdout, os.Stdout)
	cmd.Stderr = writerOr(z.Stderr, os.Stderr)

	if z.Logger != nil {
		z.Logger.Info("running build tool", "tool", z.Path, "args", args)
	}

	if err := cmd.Run(); err != nil {
		return &BuildFailedError{Tool: z.Path, ExitCode: types.ExitCodeOf(err), Err: err}
	}
	return nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
