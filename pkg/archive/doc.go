// SPDX-License-Identifier: MPL-2.0

// Package archive writes the reproducible zip and gzip-compressed tar files
// behind wheels and sdists.
//
// Entries are written in a stable order with normalized modes and
// caller-controlled timestamps, and every archive is first written to a
// temporary file beside its destination and renamed into place, so a failed
// build never leaves a partial archive under the final name.
package archive
