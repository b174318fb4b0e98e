// SPDX-License-Identifier: MPL-2.0

// Package toolchain runs the zig build that produces the compiled extension.
//
// The tool is an external collaborator: meow only checks that it exists,
// invokes it with a fixed argument list, and reports its exit status. Its
// stdout and stderr are passed through to the caller's streams unfiltered.
package toolchain
