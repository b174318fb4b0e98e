// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the meow command-line interface.
//
// Each build hook is a subcommand that prints its return value as the last
// line of stdout, so a thin front-end shim can call the binary and capture
// the result. Logs and build tool diagnostics go to stderr.
package cmd
