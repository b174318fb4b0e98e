// SPDX-License-Identifier: MPL-2.0

// Package backend implements the build-backend hooks on top of the wheel and
// sdist pipelines: it resolves project metadata, turns configuration into
// pipeline options and wires the Zig toolchain in as the wheel compiler.
package backend
