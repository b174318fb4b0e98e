// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// short suggestions. An error may also point at a catalog Issue, a longer
// Markdown guide the CLI renders with glamour below the error.
package issue
