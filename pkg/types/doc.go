// SPDX-License-Identifier: MPL-2.0

// Package types defines the validated value types shared by the meow build
// backend: package names, compatibility tags, filesystem paths, exit codes,
// and the filesystem error used by the archive pipelines.
package types
