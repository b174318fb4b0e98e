// SPDX-License-Identifier: MPL-2.0

// Package distinfo writes the metadata files of a wheel's
// "{name}-{version}.dist-info" directory: WHEEL, METADATA and RECORD.
//
// RECORD is the manifest of the archive. It lists every file under the
// archive root with its SHA-256 digest and size, plus a line for itself with
// empty digest and size fields. It must be written after every other file,
// and nothing may be added to the archive root afterwards.
package distinfo
