// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixtures for the build pipeline tests: file
// trees (WriteTree, MustWriteFile, MustMkdirAll), a minimal project with
// pyproject.toml and build.zig.zon (NewProject), and a shell script that
// stands in for `zig build` and records its arguments (FakeBuildTool,
// ReadArgs). Every helper fails the test immediately on error.
package testutil
