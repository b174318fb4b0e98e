// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates decoded TOML documents against embedded CUE schemas.
//
// Descriptor and configuration tables are parsed with go-toml first, so the
// flow here starts from a Go value instead of CUE source:
//
//  1. Compile the embedded schema and look up the root definition
//  2. Encode the Go value into CUE and unify it with the definition
//  3. Validate, reporting failures by their key path in the document
//
// # Usage
//
//	//go:embed project_schema.cue
//	var schema []byte
//
//	if _, err := cueutil.Validate(schema, table, "#Project",
//	    cueutil.WithPathPrefix("project"),
//	); err != nil {
//	    return err // e.g. "project.name: invalid value ..."
//	}
package cueutil
