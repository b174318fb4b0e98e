// SPDX-License-Identifier: MPL-2.0

// Package wheel assembles the binary distribution of a meow project.
//
// Build compiles the extension into a private staging area, lays out the
// archive root ("contents/") with the renamed artifact and the dist-info
// metadata, and zips it as "{name}-{version}-{compat_tag}.whl". The staging
// area is removed when Build returns, whether it succeeds or fails.
package wheel
