// SPDX-License-Identifier: MPL-2.0

// Package project resolves the metadata of a meow-built package.
//
// The static descriptor (pyproject.toml) declares the package; its version is
// read from the zig package manifest (build.zig.zon) and must never be
// declared in the descriptor itself. Load merges the two into an immutable
// Metadata value that lives for a single build invocation.
package project
