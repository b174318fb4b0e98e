// SPDX-License-Identifier: MPL-2.0

// Package sdist assembles the source distribution: a gzip-compressed tar of
// the allow-listed part of the project tree under a "{name}-{version}/" root.
package sdist
